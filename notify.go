package wechatpay

import "github.com/alfredzh/wechat-pay/internal/xmlcodec"

// ParseNotification validates an incoming payment notification body with
// the same checks applied to API responses: status sentinels, identity
// fields against the merchant configuration, and the signature. On
// success it returns the full field map.
//
// Reply to the gateway with ReplySuccess or ReplyFail; unacknowledged
// notifications are re-delivered.
func (c *Client) ParseNotification(rawBody []byte) (Params, error) {
	if c == nil {
		return nil, &XMLParseError{Raw: rawBody}
	}
	return c.validateResponse(rawBody)
}

// ReplySuccess builds the acknowledgement envelope for a notification.
func ReplySuccess() []byte {
	return xmlcodec.Encode(map[string]string{
		"return_code": "SUCCESS",
		"return_msg":  "OK",
	})
}

// ReplyFail builds a negative acknowledgement carrying msg.
func ReplyFail(msg string) []byte {
	if msg == "" {
		msg = "FAIL"
	}
	return xmlcodec.Encode(map[string]string{
		"return_code": "FAIL",
		"return_msg":  msg,
	})
}
