package wechatpay

import "github.com/alfredzh/wechat-pay/log"

// WechatPay is the main SDK interface.
type WechatPay interface {
	Payment() *PaymentService
	Refund() *RefundService
	RedPacket() *RedPacketService
	Transfer() *TransferService
	Bill() *BillService

	Sign(fields Params) (string, error)
	ParseNotification(rawBody []byte) (Params, error)

	SetLogLevel(level log.Level)
}

var _ WechatPay = (*Client)(nil)
