package transfer

import "github.com/alfredzh/wechat-pay/internal/fields"

// SendRequest corresponds to "Transfer to balance"
// (POST /mmpaymkttransfers/promotion/transfers).
//
// The endpoint spells the identity fields mch_appid and mchid; left empty
// they are filled from the client configuration. ReUserName is required
// when CheckName is FORCE_CHECK.
type SendRequest struct {
	MchAppID       string
	MchID          string
	DeviceInfo     string
	PartnerTradeNo string
	OpenID         string
	CheckName      string
	ReUserName     string
	Amount         int64
	Desc           string
	SpbillCreateIP string
}

func (r *SendRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "mch_appid", r.MchAppID)
	fields.Set(m, "mchid", r.MchID)
	fields.Set(m, "device_info", r.DeviceInfo)
	fields.Set(m, "partner_trade_no", r.PartnerTradeNo)
	fields.Set(m, "openid", r.OpenID)
	fields.Set(m, "check_name", r.CheckName)
	fields.Set(m, "re_user_name", r.ReUserName)
	fields.SetInt(m, "amount", r.Amount)
	fields.Set(m, "desc", r.Desc)
	fields.Set(m, "spbill_create_ip", r.SpbillCreateIP)
	return m
}

type SendResponse struct {
	PartnerTradeNo string
	PaymentNo      string
	PaymentTime    string
	All            map[string]string
}

func ParseSend(m map[string]string) *SendResponse {
	return &SendResponse{
		PartnerTradeNo: m["partner_trade_no"],
		PaymentNo:      m["payment_no"],
		PaymentTime:    m["payment_time"],
		All:            m,
	}
}

// QueryRequest corresponds to "Query transfer"
// (POST /mmpaymkttransfers/gettransferinfo).
type QueryRequest struct {
	PartnerTradeNo string
}

func (r *QueryRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "partner_trade_no", r.PartnerTradeNo)
	return m
}

type QueryResponse struct {
	PartnerTradeNo string
	DetailID       string
	Status         string
	Reason         string
	TransferTime   string
	All            map[string]string
}

func ParseQuery(m map[string]string) *QueryResponse {
	return &QueryResponse{
		PartnerTradeNo: m["partner_trade_no"],
		DetailID:       m["detail_id"],
		Status:         m["status"],
		Reason:         m["reason"],
		TransferTime:   m["transfer_time"],
		All:            m,
	}
}
