package wechatpay

import (
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/signature"
	"github.com/alfredzh/wechat-pay/internal/xmlcodec"
)

// buildRequest turns caller fields into the serialized signed envelope for
// op: defaults are merged without overwriting caller values, the signature
// is computed and attached, and required-field presence is validated with
// every unsatisfied entry reported at once.
func (c *Client) buildRequest(op operation, fields Params) ([]byte, error) {
	merged := fields.Clone()
	c.applyDefaults(op, merged)

	if c.cfg.signType != consts.SignTypeMD5 && c.cfg.signType != "" {
		// sign_type is a regular field and participates in signing.
		merged.SetNonEmpty("sign_type", string(c.cfg.signType))
	}

	sign, err := signature.Sign(merged, c.cfg.partnerKey, c.cfg.signType)
	if err != nil {
		return nil, err
	}
	merged["sign"] = sign

	if op.escapeLongURL {
		// The short-link endpoint wants the URL percent-encoded on the
		// wire, but signed in its raw form.
		if v := merged.Get("long_url"); v != "" {
			merged["long_url"] = url.QueryEscape(v)
		}
	}

	if missing := missingFields(op, merged); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}
	return xmlcodec.Encode(merged), nil
}

// applyDefaults fills op's default profile and extras from the client
// config. A field already supplied by the caller is never overwritten.
func (c *Client) applyDefaults(op operation, merged Params) {
	defaulted := func(name, value string) {
		if merged.Get(name) == "" {
			merged.SetNonEmpty(name, value)
		}
	}

	switch op.defaults {
	case defaultsFull:
		defaulted("appid", c.cfg.appID)
		defaulted("mch_id", c.cfg.mchID)
		defaulted("sub_mch_id", c.cfg.subMchID)
		defaulted("nonce_str", nonce())
	case defaultsMerchant:
		defaulted("mch_id", c.cfg.mchID)
		defaulted("nonce_str", nonce())
	case defaultsNonce:
		defaulted("nonce_str", nonce())
	}

	for _, name := range op.extras {
		switch name {
		case "notify_url":
			defaulted("notify_url", c.cfg.notifyURL)
		case "op_user_id":
			defaulted("op_user_id", c.cfg.mchID)
		case "appid":
			defaulted("appid", c.cfg.appID)
		case "wxappid":
			defaulted("wxappid", c.cfg.appID)
		case "mch_appid":
			defaulted("mch_appid", c.cfg.appID)
		case "mch_id":
			defaulted("mch_id", c.cfg.mchID)
		case "mchid":
			defaulted("mchid", c.cfg.mchID)
		}
	}
}

// missingFields returns every required entry with no satisfied alternative,
// including entries conditioned on the operation's discriminant field.
func missingFields(op operation, merged Params) []string {
	entries := make([]string, 0, len(op.required)+2)
	entries = append(entries, op.required...)
	if op.discriminant != "" {
		entries = append(entries, op.conditional[merged.Get(op.discriminant)]...)
	}

	var missing []string
	for _, entry := range entries {
		satisfied := false
		for _, alt := range strings.Split(entry, "|") {
			if merged.Get(alt) != "" {
				satisfied = true
				break
			}
		}
		if !satisfied {
			missing = append(missing, entry)
		}
	}
	return missing
}

// nonce returns a random 32-character string unique per request.
func nonce() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
