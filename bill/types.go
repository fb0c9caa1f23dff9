package bill

import (
	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/fields"
)

// DownloadRequest corresponds to "Download bill" (POST /pay/downloadbill).
type DownloadRequest struct {
	BillDate string
	BillType consts.BillType
}

func (r *DownloadRequest) Fields() map[string]string {
	m := make(map[string]string)
	fields.Set(m, "bill_date", r.BillDate)
	fields.Set(m, "bill_type", string(r.BillType))
	return m
}
