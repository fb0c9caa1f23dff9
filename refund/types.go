package refund

import "github.com/alfredzh/wechat-pay/internal/fields"

// RefundRequest corresponds to "Refund" (POST /secapi/pay/refund).
//
// One of TransactionID or OutTradeNo identifies the original order.
// OpUserID defaults to the merchant id when left empty.
type RefundRequest struct {
	TransactionID string
	OutTradeNo    string
	OutRefundNo   string
	TotalFee      int64
	RefundFee     int64
	RefundFeeType string
	OpUserID      string
	RefundAccount string
	RefundDesc    string
	NotifyURL     string
}

func (r *RefundRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "transaction_id", r.TransactionID)
	fields.Set(m, "out_trade_no", r.OutTradeNo)
	fields.Set(m, "out_refund_no", r.OutRefundNo)
	fields.SetInt(m, "total_fee", r.TotalFee)
	fields.SetInt(m, "refund_fee", r.RefundFee)
	fields.Set(m, "refund_fee_type", r.RefundFeeType)
	fields.Set(m, "op_user_id", r.OpUserID)
	fields.Set(m, "refund_account", r.RefundAccount)
	fields.Set(m, "refund_desc", r.RefundDesc)
	fields.Set(m, "notify_url", r.NotifyURL)
	return m
}

type RefundResponse struct {
	RefundID      string
	OutRefundNo   string
	TransactionID string
	OutTradeNo    string
	RefundFee     int64
	TotalFee      int64
	All           map[string]string
}

func ParseRefund(m map[string]string) *RefundResponse {
	return &RefundResponse{
		RefundID:      m["refund_id"],
		OutRefundNo:   m["out_refund_no"],
		TransactionID: m["transaction_id"],
		OutTradeNo:    m["out_trade_no"],
		RefundFee:     fields.Int(m, "refund_fee"),
		TotalFee:      fields.Int(m, "total_fee"),
		All:           m,
	}
}

// QueryRequest corresponds to "Refund query" (POST /pay/refundquery).
// Any one of the four identifiers is enough.
type QueryRequest struct {
	TransactionID string
	OutTradeNo    string
	OutRefundNo   string
	RefundID      string
}

func (r *QueryRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "transaction_id", r.TransactionID)
	fields.Set(m, "out_trade_no", r.OutTradeNo)
	fields.Set(m, "out_refund_no", r.OutRefundNo)
	fields.Set(m, "refund_id", r.RefundID)
	return m
}

type QueryResponse struct {
	TransactionID string
	OutTradeNo    string
	TotalFee      int64
	RefundCount   int64
	All           map[string]string
}

func ParseQuery(m map[string]string) *QueryResponse {
	return &QueryResponse{
		TransactionID: m["transaction_id"],
		OutTradeNo:    m["out_trade_no"],
		TotalFee:      fields.Int(m, "total_fee"),
		RefundCount:   fields.Int(m, "refund_count"),
		All:           m,
	}
}
