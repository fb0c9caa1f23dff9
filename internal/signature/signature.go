package signature

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/alfredzh/wechat-pay/consts"
)

// Canonical serializes params into the string the merchant API signs.
//
// The sign field and empty values are dropped, the remaining keys are
// sorted by byte value and joined as k=v pairs with "&". The remote
// service rebuilds the exact same string, so any divergence here
// invalidates every signature.
func Canonical(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if k == "sign" || v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	return strings.Join(pairs, "&")
}

// Sign computes the upper-case hex signature of params under key.
//
// It is a pure function of its inputs: response verification works by
// recomputing the signature rather than keeping state.
func Sign(params map[string]string, key string, signType consts.SignType) (string, error) {
	input := Canonical(params) + "&key=" + key

	var sum []byte
	switch signType {
	case consts.SignTypeMD5, "":
		h := md5.Sum([]byte(input))
		sum = h[:]
	case consts.SignTypeHMACSHA256:
		mac := hmac.New(sha256.New, []byte(key))
		mac.Write([]byte(input))
		sum = mac.Sum(nil)
	default:
		return "", fmt.Errorf("signature: unsupported sign type: %q", signType)
	}
	return strings.ToUpper(hex.EncodeToString(sum)), nil
}
