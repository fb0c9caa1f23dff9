package payment

import (
	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/fields"
)

// UnifiedOrderRequest corresponds to "Unified order" (POST /pay/unifiedorder).
//
// TradeType drives conditional requirements: JSAPI needs OpenID or
// SubOpenID, NATIVE needs ProductID.
type UnifiedOrderRequest struct {
	Body           string
	Detail         string
	Attach         string
	OutTradeNo     string
	FeeType        string
	TotalFee       int64
	SpbillCreateIP string
	TimeStart      string
	TimeExpire     string
	GoodsTag       string
	NotifyURL      string
	TradeType      consts.TradeType
	ProductID      string
	LimitPay       string
	OpenID         string
	SubOpenID      string
	SceneInfo      string
	DeviceInfo     string
}

func (r *UnifiedOrderRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "body", r.Body)
	fields.Set(m, "detail", r.Detail)
	fields.Set(m, "attach", r.Attach)
	fields.Set(m, "out_trade_no", r.OutTradeNo)
	fields.Set(m, "fee_type", r.FeeType)
	fields.SetInt(m, "total_fee", r.TotalFee)
	fields.Set(m, "spbill_create_ip", r.SpbillCreateIP)
	fields.Set(m, "time_start", r.TimeStart)
	fields.Set(m, "time_expire", r.TimeExpire)
	fields.Set(m, "goods_tag", r.GoodsTag)
	fields.Set(m, "notify_url", r.NotifyURL)
	fields.Set(m, "trade_type", string(r.TradeType))
	fields.Set(m, "product_id", r.ProductID)
	fields.Set(m, "limit_pay", r.LimitPay)
	fields.Set(m, "openid", r.OpenID)
	fields.Set(m, "sub_openid", r.SubOpenID)
	fields.Set(m, "scene_info", r.SceneInfo)
	fields.Set(m, "device_info", r.DeviceInfo)
	return m
}

// UnifiedOrderResponse carries the prepay token plus channel-specific
// payload; All retains the full response field map.
type UnifiedOrderResponse struct {
	PrepayID  string
	CodeURL   string
	TradeType string
	MWebURL   string
	All       map[string]string
}

func ParseUnifiedOrder(m map[string]string) *UnifiedOrderResponse {
	return &UnifiedOrderResponse{
		PrepayID:  m["prepay_id"],
		CodeURL:   m["code_url"],
		TradeType: m["trade_type"],
		MWebURL:   m["mweb_url"],
		All:       m,
	}
}

// OrderQueryRequest corresponds to "Order query" (POST /pay/orderquery).
// One of TransactionID or OutTradeNo is required.
type OrderQueryRequest struct {
	TransactionID string
	OutTradeNo    string
}

func (r *OrderQueryRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "transaction_id", r.TransactionID)
	fields.Set(m, "out_trade_no", r.OutTradeNo)
	return m
}

type OrderQueryResponse struct {
	TradeState     consts.TradeState
	TradeStateDesc string
	TransactionID  string
	OutTradeNo     string
	OpenID         string
	TotalFee       int64
	TimeEnd        string
	All            map[string]string
}

func ParseOrderQuery(m map[string]string) *OrderQueryResponse {
	return &OrderQueryResponse{
		TradeState:     consts.TradeState(m["trade_state"]),
		TradeStateDesc: m["trade_state_desc"],
		TransactionID:  m["transaction_id"],
		OutTradeNo:     m["out_trade_no"],
		OpenID:         m["openid"],
		TotalFee:       fields.Int(m, "total_fee"),
		TimeEnd:        m["time_end"],
		All:            m,
	}
}

// CloseOrderRequest corresponds to "Close order" (POST /pay/closeorder).
type CloseOrderRequest struct {
	OutTradeNo string
}

func (r *CloseOrderRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "out_trade_no", r.OutTradeNo)
	return m
}

// ShortURLRequest corresponds to "Short URL" (POST /tools/shorturl).
type ShortURLRequest struct {
	LongURL string
}

func (r *ShortURLRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "long_url", r.LongURL)
	return m
}

type ShortURLResponse struct {
	ShortURL string
	All      map[string]string
}

func ParseShortURL(m map[string]string) *ShortURLResponse {
	return &ShortURLResponse{ShortURL: m["short_url"], All: m}
}

// GetSignKeyResponse carries the sandbox signing key exchanged for the
// production partner key.
type GetSignKeyResponse struct {
	SandboxSignKey string
	All            map[string]string
}

func ParseGetSignKey(m map[string]string) *GetSignKeyResponse {
	return &GetSignKeyResponse{SandboxSignKey: m["sandbox_signkey"], All: m}
}

// JSAPIParams is the independently signed payload handed to WeChat JS
// bridge code (wx.chooseWXPay / WeixinJSBridge) to invoke payment with a
// prepay token.
type JSAPIParams struct {
	AppID     string `json:"appId"`
	TimeStamp string `json:"timeStamp"`
	NonceStr  string `json:"nonceStr"`
	Package   string `json:"package"`
	SignType  string `json:"signType"`
	PaySign   string `json:"paySign"`
}

// AppParams is the independently signed payload consumed by the in-app
// payment invocation.
type AppParams struct {
	AppID     string `json:"appid"`
	PartnerID string `json:"partnerid"`
	PrepayID  string `json:"prepayid"`
	Package   string `json:"package"`
	NonceStr  string `json:"noncestr"`
	TimeStamp string `json:"timestamp"`
	Sign      string `json:"sign"`
}
