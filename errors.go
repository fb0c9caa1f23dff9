package wechatpay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alfredzh/wechat-pay/internal/httpclient"
)

// MissingFieldsError reports every unsatisfied required-field entry of a
// request at once, so a caller can fix them in one round trip. An entry
// may name alternatives joined with "|", of which at least one must be
// set.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "missing required fields"
	}
	return "missing required fields: " + strings.Join(e.Fields, ",")
}

// IsMissingFields checks whether err is a *MissingFieldsError.
func IsMissingFields(err error) bool {
	var me *MissingFieldsError
	return errors.As(err, &me)
}

// TransportError wraps a network-level failure of the exchange.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "transport error"
	}
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// APIError represents a non-2xx HTTP response from the gateway.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	if e == nil {
		return "wechat pay api error"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("wechat pay api error: status %d", e.StatusCode)
	}
	b := e.Body
	if len(b) > 1024 {
		b = b[:1024]
	}
	return fmt.Sprintf("wechat pay api error: status %d: %s", e.StatusCode, string(b))
}

// XMLParseError indicates a response body that is not the expected XML
// envelope. Raw carries the full body so the caller can attempt an
// alternate parse; the bill download report is tabular text, not XML.
type XMLParseError struct {
	Raw []byte
	Err error
}

func (e *XMLParseError) Error() string {
	if e == nil {
		return "xml parse error"
	}
	preview := string(e.Raw)
	if len(preview) > 256 {
		preview = preview[:256] + "..."
	}
	return fmt.Sprintf("xml parse error: %v: %s", e.Err, preview)
}

func (e *XMLParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ProtocolError is a remote-declared top-level failure (return_code=FAIL).
type ProtocolError struct {
	Message string
}

func (e *ProtocolError) Error() string {
	if e == nil {
		return "protocol error"
	}
	return "protocol error: " + e.Message
}

// BusinessError is a remote-declared operation failure (result_code=FAIL).
type BusinessError struct {
	Code    string
	Message string
}

func (e *BusinessError) Error() string {
	if e == nil {
		return "business error"
	}
	if e.Message == "" {
		return "business error: " + e.Code
	}
	return fmt.Sprintf("business error: %s: %s", e.Code, e.Message)
}

// IsBusinessError checks whether err is a *BusinessError.
func IsBusinessError(err error) bool {
	var be *BusinessError
	return errors.As(err, &be)
}

// InvalidAppIDError means the response appid differs from the configured one.
type InvalidAppIDError struct {
	Got  string
	Want string
}

func (e *InvalidAppIDError) Error() string {
	return fmt.Sprintf("invalid appid in response: got %q, want %q", e.Got, e.Want)
}

// InvalidMchIDError means the response merchant id differs from the
// configured one. Field records which remote spelling carried the value;
// the API uses both mch_id and mchid depending on the operation.
type InvalidMchIDError struct {
	Field string
	Got   string
	Want  string
}

func (e *InvalidMchIDError) Error() string {
	return fmt.Sprintf("invalid %s in response: got %q, want %q", e.Field, e.Got, e.Want)
}

// InvalidSubMchIDError means the response sub_mch_id differs from the
// configured sub-merchant id.
type InvalidSubMchIDError struct {
	Got  string
	Want string
}

func (e *InvalidSubMchIDError) Error() string {
	return fmt.Sprintf("invalid sub_mch_id in response: got %q, want %q", e.Got, e.Want)
}

// InvalidSignatureError means the response signature does not match the
// recomputed one. Comparison is strict: a lower-case remote signature is
// rejected.
type InvalidSignatureError struct {
	Got  string
	Want string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid response signature: got %q, want %q", e.Got, e.Want)
}

// ErrCertificateRequired is returned before any network exchange when an
// operation needs the merchant certificate and none is configured.
var ErrCertificateRequired = errors.New("operation requires a merchant certificate; use WithCertificate or WithPKCS12")

func wrapTransportError(err error) error {
	if err == nil {
		return nil
	}
	var hs *httpclient.HTTPStatusError
	if errors.As(err, &hs) {
		return &APIError{StatusCode: hs.StatusCode, Body: hs.Body}
	}
	return &TransportError{Err: err}
}
