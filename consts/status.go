package consts

// Status sentinels used in return_code and result_code.
const (
	Success = "SUCCESS"
	Fail    = "FAIL"
)

// SignType selects the digest used for the request/response signature.
//
// Values match the wire representation of the sign_type field.
type SignType string

const (
	SignTypeMD5        SignType = "MD5"
	SignTypeHMACSHA256 SignType = "HMAC-SHA256"
)

// TradeType is the payment channel discriminant of a unified order.
type TradeType string

const (
	TradeTypeJSAPI  TradeType = "JSAPI"
	TradeTypeNative TradeType = "NATIVE"
	TradeTypeApp    TradeType = "APP"
	TradeTypeMWeb   TradeType = "MWEB"
)

// TradeState is the state of an order as reported by order query.
//
// Values are taken from the merchant API documentation.
type TradeState string

const (
	TradeStateSuccess    TradeState = "SUCCESS"
	TradeStateRefund     TradeState = "REFUND"
	TradeStateNotPay     TradeState = "NOTPAY"
	TradeStateClosed     TradeState = "CLOSED"
	TradeStateRevoked    TradeState = "REVOKED"
	TradeStateUserPaying TradeState = "USERPAYING"
	TradeStatePayError   TradeState = "PAYERROR"
)

// BillType selects which orders a downloaded statement covers.
type BillType string

const (
	BillTypeAll             BillType = "ALL"
	BillTypeSuccess         BillType = "SUCCESS"
	BillTypeRefund          BillType = "REFUND"
	BillTypeRevokedRefunded BillType = "REVOKED_REFUNDED"
)
