// Package fields holds tiny helpers shared by the typed request packages
// when they convert to the flat field map at the signing boundary.
package fields

import "strconv"

// Set stores value unless it is empty; absent fields must stay absent so
// they are excluded from canonicalization.
func Set(m map[string]string, key, value string) {
	if value == "" {
		return
	}
	m[key] = value
}

// SetInt stores value as a decimal string unless it is zero.
func SetInt(m map[string]string, key string, value int64) {
	if value == 0 {
		return
	}
	m[key] = strconv.FormatInt(value, 10)
}

// Int parses the named field, returning 0 for absent or malformed values.
func Int(m map[string]string, key string) int64 {
	n, err := strconv.ParseInt(m[key], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
