package redpacket

import "github.com/alfredzh/wechat-pay/internal/fields"

// SendRequest corresponds to "Send red packet"
// (POST /mmpaymkttransfers/sendredpack).
//
// The endpoint identifies the application as wxappid; left empty it is
// filled from the client configuration.
type SendRequest struct {
	WxAppID     string
	MchBillNo   string
	SendName    string
	ReOpenID    string
	TotalAmount int64
	TotalNum    int64
	Wishing     string
	ClientIP    string
	ActName     string
	Remark      string
	SceneID     string
}

func (r *SendRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "wxappid", r.WxAppID)
	fields.Set(m, "mch_billno", r.MchBillNo)
	fields.Set(m, "send_name", r.SendName)
	fields.Set(m, "re_openid", r.ReOpenID)
	fields.SetInt(m, "total_amount", r.TotalAmount)
	fields.SetInt(m, "total_num", r.TotalNum)
	fields.Set(m, "wishing", r.Wishing)
	fields.Set(m, "client_ip", r.ClientIP)
	fields.Set(m, "act_name", r.ActName)
	fields.Set(m, "remark", r.Remark)
	fields.Set(m, "scene_id", r.SceneID)
	return m
}

type SendResponse struct {
	MchBillNo   string
	SendListID  string
	TotalAmount int64
	All         map[string]string
}

func ParseSend(m map[string]string) *SendResponse {
	return &SendResponse{
		MchBillNo:   m["mch_billno"],
		SendListID:  m["send_listid"],
		TotalAmount: fields.Int(m, "total_amount"),
		All:         m,
	}
}

// QueryRequest corresponds to "Query red packet"
// (POST /mmpaymkttransfers/gethbinfo). BillType defaults to MCHT, the
// only documented value.
type QueryRequest struct {
	MchBillNo string
	BillType  string
}

func (r *QueryRequest) Fields() map[string]string {
	billType := r.BillType
	if billType == "" {
		billType = "MCHT"
	}
	m := make(map[string]string)
	fields.Set(m, "mch_billno", r.MchBillNo)
	fields.Set(m, "bill_type", billType)
	return m
}

type QueryResponse struct {
	MchBillNo   string
	Status      string
	SendType    string
	TotalAmount int64
	All         map[string]string
}

func ParseQuery(m map[string]string) *QueryResponse {
	return &QueryResponse{
		MchBillNo:   m["mch_billno"],
		Status:      m["status"],
		SendType:    m["send_type"],
		TotalAmount: fields.Int(m, "total_amount"),
		All:         m,
	}
}
