package wechatpay

import "strconv"

// Params is the flat field map flowing through signing, serialization and
// response validation. Typed per-operation requests convert to Params at
// the signing boundary; successful responses come back as Params so the
// caller can read any business payload field.
type Params map[string]string

func (p Params) Get(key string) string {
	return p[key]
}

func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// GetInt64 parses the named field as a base-10 integer, returning 0 for
// absent or malformed values.
func (p Params) GetInt64(key string) int64 {
	n, err := strconv.ParseInt(p[key], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// SetNonEmpty stores value under key unless value is empty. Empty values
// never participate in canonicalization, so they are not stored at all.
func (p Params) SetNonEmpty(key, value string) {
	if value == "" {
		return
	}
	p[key] = value
}

// SetInt64NonZero stores value as a decimal string unless it is zero.
func (p Params) SetInt64NonZero(key string, value int64) {
	if value == 0 {
		return
	}
	p[key] = strconv.FormatInt(value, 10)
}

// Clone returns a copy with empty values dropped.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
