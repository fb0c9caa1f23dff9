package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stremovskyy/recorder"

	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/log"
)

// Client is a small HTTP helper for the XML merchant API.
// It is internal on purpose: the public API lives in the root package.
//
// Every exchange is a single attempt. The caller owns retry policy, so a
// transport failure terminates the call with an error.
type Client struct {
	httpClient *http.Client
	certClient *http.Client
	logger     log.Logger
	logBodies  bool
	recorder   recorder.Recorder
}

// New creates an internal HTTP client. certClient carries the merchant
// TLS client certificate and may be nil when no certificate is configured.
func New(httpClient *http.Client, certClient *http.Client, logger log.Logger, logBodies bool, rec recorder.Recorder) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Client{
		httpClient: httpClient,
		certClient: certClient,
		logger:     logger,
		logBodies:  logBodies,
		recorder:   rec,
	}
}

// HasCertificate reports whether a client-certificate transport is configured.
func (c *Client) HasCertificate() bool {
	return c != nil && c.certClient != nil
}

// PostXML sends body to url and returns the raw response body.
//
// useCert selects the client-certificate transport required by refund,
// red packet and transfer endpoints.
func (c *Client) PostXML(ctx context.Context, url string, body []byte, useCert bool) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	requestID := nextRequestID()

	hc := c.httpClient
	if useCert {
		if c.certClient == nil {
			return nil, fmt.Errorf("httpclient: endpoint %s requires a merchant certificate", url)
		}
		hc = c.certClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.recordError(ctx, requestID, err)
		return nil, err
	}
	req.Header.Set(consts.HeaderContentType, consts.ContentTypeXML)
	req.Header.Set(consts.HeaderAccept, "text/xml")

	c.logger.Debugf("[WechatPay HTTP] request: request_id=%s url=%s cert=%t payload=%s", requestID, url, useCert, logBody(body, c.logBodies))
	c.recordRequest(ctx, requestID, body)

	resp, err := hc.Do(req)
	if err != nil {
		c.recordError(ctx, requestID, err)
		c.logger.Errorf("[WechatPay HTTP] request failed: request_id=%s url=%s err=%v", requestID, url, err)
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.recordError(ctx, requestID, err)
		return nil, err
	}
	c.recordResponse(ctx, requestID, raw)

	c.logger.Debugf("[WechatPay HTTP] response: request_id=%s url=%s status=%d response=%s", requestID, url, resp.StatusCode, logBody(raw, c.logBodies))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &HTTPStatusError{StatusCode: resp.StatusCode, Body: raw}
		c.recordError(ctx, requestID, statusErr)
		return raw, statusErr
	}
	return raw, nil
}

// HTTPStatusError indicates a non-2xx response.
type HTTPStatusError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "http status error"
	}
	if len(e.Body) == 0 {
		return fmt.Sprintf("unexpected status: %d", e.StatusCode)
	}
	b := e.Body
	if len(b) > 512 {
		b = b[:512]
	}
	return fmt.Sprintf("unexpected status: %d: %s", e.StatusCode, string(b))
}

func nextRequestID() string {
	return uuid.NewString()
}

func (c *Client) recordRequest(ctx context.Context, requestID string, body []byte) {
	if c == nil || c.recorder == nil {
		return
	}
	if err := c.recorder.RecordRequest(ctx, nil, requestID, body, nil); err != nil {
		c.logger.Warnf("[WechatPay HTTP] cannot record request: %v", err)
	}
}

func (c *Client) recordResponse(ctx context.Context, requestID string, body []byte) {
	if c == nil || c.recorder == nil {
		return
	}
	if err := c.recorder.RecordResponse(ctx, nil, requestID, body, nil); err != nil {
		c.logger.Warnf("[WechatPay HTTP] cannot record response: %v", err)
	}
}

func (c *Client) recordError(ctx context.Context, requestID string, err error) {
	if c == nil || c.recorder == nil || err == nil {
		return
	}
	if recErr := c.recorder.RecordError(ctx, nil, requestID, err, nil); recErr != nil {
		c.logger.Warnf("[WechatPay HTTP] cannot record error: %v", recErr)
	}
}

func logBody(b []byte, verbose bool) string {
	if !verbose {
		return fmt.Sprintf("size=%d bytes", len(b))
	}
	if len(b) == 0 {
		return "<empty>"
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return "<empty>"
	}
	if !utf8.ValidString(s) {
		return fmt.Sprintf("<binary size=%d bytes>", len(b))
	}
	return truncate(s, 4096)
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
