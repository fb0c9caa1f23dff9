package wechatpay

import "github.com/alfredzh/wechat-pay/consts"

// defaultProfile names the set of config-derived fields an operation gets
// for free. Standard payment operations carry the full merchant identity;
// red packet operations identify the merchant under different field names
// and only get mch_id plus a nonce; transfers spell every identity field
// differently (mch_appid/mchid) and get only the nonce from the profile.
type defaultProfile int

const (
	defaultsFull     defaultProfile = iota // appid, mch_id, sub_mch_id, nonce_str
	defaultsMerchant                       // mch_id, nonce_str
	defaultsNonce                          // nonce_str
)

// operation is the static descriptor of one API operation: where it goes,
// which fields the client auto-populates, and what the caller must supply.
// Descriptors are never mutated.
type operation struct {
	name     string
	path     string
	defaults defaultProfile

	// extras are additional config-derived defaults, by field name.
	// They are applied with the same or-default rule as the profile:
	// never overwriting a caller-supplied value.
	extras []string

	// required entries must be non-empty after defaulting. An entry may
	// be a "|"-joined list of alternatives, of which one must be set.
	required []string

	// conditional adds required entries depending on the value of the
	// discriminant field.
	discriminant string
	conditional  map[string][]string

	// needsCert routes the request through the client-certificate
	// transport and fails fast when none is configured.
	needsCert bool

	// escapeLongURL percent-encodes the long_url field after signing,
	// as the short-link endpoint expects.
	escapeLongURL bool

	// sandboxOnly pins the operation to the sandbox base URL regardless
	// of the configured mode.
	sandboxOnly bool
}

var (
	opUnifiedOrder = operation{
		name:         "unifiedorder",
		path:         consts.PayUnifiedOrderPath,
		defaults:     defaultsFull,
		extras:       []string{"notify_url"},
		required:     []string{"body", "out_trade_no", "total_fee", "spbill_create_ip", "trade_type"},
		discriminant: "trade_type",
		conditional: map[string][]string{
			string(consts.TradeTypeJSAPI):  {"openid|sub_openid"},
			string(consts.TradeTypeNative): {"product_id"},
		},
	}

	opOrderQuery = operation{
		name:     "orderquery",
		path:     consts.PayOrderQueryPath,
		defaults: defaultsFull,
		required: []string{"transaction_id|out_trade_no"},
	}

	opCloseOrder = operation{
		name:     "closeorder",
		path:     consts.PayCloseOrderPath,
		defaults: defaultsFull,
		required: []string{"out_trade_no"},
	}

	opRefund = operation{
		name:      "refund",
		path:      consts.PayRefundPath,
		defaults:  defaultsFull,
		extras:    []string{"op_user_id"},
		required:  []string{"transaction_id|out_trade_no", "out_refund_no", "total_fee", "refund_fee", "op_user_id"},
		needsCert: true,
	}

	opRefundQuery = operation{
		name:     "refundquery",
		path:     consts.PayRefundQueryPath,
		defaults: defaultsFull,
		required: []string{"transaction_id|out_trade_no|out_refund_no|refund_id"},
	}

	opDownloadBill = operation{
		name:     "downloadbill",
		path:     consts.PayDownloadBillPath,
		defaults: defaultsFull,
		required: []string{"bill_date", "bill_type"},
	}

	opShortURL = operation{
		name:          "shorturl",
		path:          consts.PayShortURLPath,
		defaults:      defaultsFull,
		required:      []string{"long_url"},
		escapeLongURL: true,
	}

	opGetSignKey = operation{
		name:        "getsignkey",
		path:        consts.PayGetSignKeyPath,
		defaults:    defaultsMerchant,
		required:    []string{"mch_id"},
		sandboxOnly: true,
	}

	opRedPacketSend = operation{
		name:      "sendredpack",
		path:      consts.RedPacketSendPath,
		defaults:  defaultsMerchant,
		extras:    []string{"wxappid"},
		required:  []string{"wxappid", "mch_billno", "send_name", "re_openid", "total_amount", "total_num", "wishing", "client_ip", "act_name", "remark"},
		needsCert: true,
	}

	opRedPacketQuery = operation{
		name:      "gethbinfo",
		path:      consts.RedPacketQueryPath,
		defaults:  defaultsMerchant,
		extras:    []string{"appid"},
		required:  []string{"mch_billno", "bill_type"},
		needsCert: true,
	}

	opTransferSend = operation{
		name:      "transfers",
		path:      consts.TransferSendPath,
		defaults:  defaultsNonce,
		extras:    []string{"mch_appid", "mchid"},
		required:  []string{"partner_trade_no", "openid", "check_name", "amount", "desc", "spbill_create_ip"},
		needsCert: true,
	}

	opTransferQuery = operation{
		name:      "gettransferinfo",
		path:      consts.TransferQueryPath,
		defaults:  defaultsNonce,
		extras:    []string{"appid", "mch_id"},
		required:  []string{"partner_trade_no"},
		needsCert: true,
	}
)
