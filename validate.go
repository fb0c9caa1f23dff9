package wechatpay

import (
	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/signature"
	"github.com/alfredzh/wechat-pay/internal/xmlcodec"
)

// validateResponse parses rawBody and runs the protocol, business,
// identity and signature checks in order, short-circuiting at the first
// failure. A check whose precondition field is absent is skipped: the API
// does not echo every identity field on every operation.
func (c *Client) validateResponse(rawBody []byte) (Params, error) {
	fields, err := xmlcodec.Decode(rawBody)
	if err != nil {
		return nil, &XMLParseError{Raw: rawBody, Err: err}
	}
	p := Params(fields)

	if p.Get("return_code") == consts.Fail {
		return nil, &ProtocolError{Message: p.Get("return_msg")}
	}
	if p.Has("result_code") && p.Get("result_code") == consts.Fail {
		return nil, &BusinessError{Code: p.Get("err_code"), Message: p.Get("err_code_des")}
	}

	if v := p.Get("appid"); v != "" && v != c.cfg.appID {
		return nil, &InvalidAppIDError{Got: v, Want: c.cfg.appID}
	}
	// The API reports the merchant id as mch_id or mchid depending on the
	// operation; both spellings are checked.
	if v := p.Get("mch_id"); v != "" && v != c.cfg.mchID {
		return nil, &InvalidMchIDError{Field: "mch_id", Got: v, Want: c.cfg.mchID}
	}
	if v := p.Get("mchid"); v != "" && v != c.cfg.mchID {
		return nil, &InvalidMchIDError{Field: "mchid", Got: v, Want: c.cfg.mchID}
	}
	if c.cfg.subMchID != "" {
		if v := p.Get("sub_mch_id"); v != "" && v != c.cfg.subMchID {
			return nil, &InvalidSubMchIDError{Got: v, Want: c.cfg.subMchID}
		}
	}

	if got := p.Get("sign"); got != "" {
		want, err := signature.Sign(p, c.cfg.partnerKey, c.cfg.signType)
		if err != nil {
			return nil, err
		}
		if got != want {
			return nil, &InvalidSignatureError{Got: got, Want: want}
		}
	}
	return p, nil
}
