package consts

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"

	ContentTypeXML = "text/xml; charset=utf-8"
)

// Base URLs.
const (
	// Production merchant API.
	ProductionBaseURL = "https://api.mch.weixin.qq.com"
	// Sandbox environment. The sandbox expects the exchanged sign key
	// (see PayGetSignKeyPath) as the partner key.
	SandboxBaseURL = "https://api.mch.weixin.qq.com/sandboxnew"
)

// Payment endpoint paths.
const (
	PayUnifiedOrderPath = "/pay/unifiedorder"
	PayOrderQueryPath   = "/pay/orderquery"
	PayCloseOrderPath   = "/pay/closeorder"
	PayRefundPath       = "/secapi/pay/refund"
	PayRefundQueryPath  = "/pay/refundquery"
	PayDownloadBillPath = "/pay/downloadbill"
	PayShortURLPath     = "/tools/shorturl"

	// Sandbox-only: exchanges the production partner key for a sandbox sign key.
	PayGetSignKeyPath = "/pay/getsignkey"
)

// Red packet endpoint paths.
const (
	RedPacketSendPath  = "/mmpaymkttransfers/sendredpack"
	RedPacketQueryPath = "/mmpaymkttransfers/gethbinfo"
)

// Enterprise transfer endpoint paths.
const (
	TransferSendPath  = "/mmpaymkttransfers/promotion/transfers"
	TransferQueryPath = "/mmpaymkttransfers/gettransferinfo"
)
