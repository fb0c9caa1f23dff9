package wechatpay

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/alfredzh/wechat-pay/bill"
	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/httpclient"
	"github.com/alfredzh/wechat-pay/internal/signature"
	"github.com/alfredzh/wechat-pay/log"
	"github.com/alfredzh/wechat-pay/payment"
	"github.com/alfredzh/wechat-pay/redpacket"
	"github.com/alfredzh/wechat-pay/refund"
	"github.com/alfredzh/wechat-pay/transfer"
)

// Client is the main WeChat Pay merchant API client.
//
// It covers order creation and query, refunds, bill download, short
// links, red packets and enterprise transfers. Every request is signed
// and every response is validated against the merchant configuration
// before it reaches the caller.
type Client struct {
	cfg config

	http *httpclient.Client

	payment   *PaymentService
	refund    *RefundService
	redPacket *RedPacketService
	transfer  *TransferService
	bill      *BillService
}

func NewClient(opts ...Option) (WechatPay, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	c := &Client{cfg: cfg}
	c.http = httpclient.New(cfg.httpClient, cfg.certHTTPClient(), cfg.logger, cfg.logBodies, cfg.recorder)

	c.payment = &PaymentService{c: c}
	c.refund = &RefundService{c: c}
	c.redPacket = &RedPacketService{c: c}
	c.transfer = &TransferService{c: c}
	c.bill = &BillService{c: c}
	return c, nil
}

func (c *Client) Payment() *PaymentService     { return c.payment }
func (c *Client) Refund() *RefundService       { return c.refund }
func (c *Client) RedPacket() *RedPacketService { return c.redPacket }
func (c *Client) Transfer() *TransferService   { return c.transfer }
func (c *Client) Bill() *BillService           { return c.bill }

// SetLogLevel updates SDK log level when current logger supports it.
func (c *Client) SetLogLevel(level log.Level) {
	if c == nil || c.cfg.logger == nil {
		return
	}
	if l, ok := c.cfg.logger.(interface{ SetLevel(log.Level) }); ok {
		l.SetLevel(level)
	}
}

// Sign computes the request signature over fields with the configured
// partner key and sign type.
func (c *Client) Sign(fields Params) (string, error) {
	if c == nil {
		return "", errors.New("client is not initialized")
	}
	return signature.Sign(fields, c.cfg.partnerKey, c.cfg.signType)
}

// endpoint resolves op's full URL for the configured mode.
func (c *Client) endpoint(op operation) (string, error) {
	base := c.cfg.baseURL
	if c.cfg.sandbox || op.sandboxOnly {
		base = c.cfg.sandboxBaseURL
	}
	return joinURL(base, op.path)
}

// do runs the whole exchange for one operation: build and sign the
// request, post it, validate the response. Each call is independent; an
// error never poisons the client.
func (c *Client) do(ctx context.Context, op operation, fields Params, runOpts ...RunOption) (Params, error) {
	if c == nil {
		return nil, errors.New("client is nil")
	}
	if op.needsCert && !c.http.HasCertificate() {
		return nil, ErrCertificateRequired
	}

	body, err := c.buildRequest(op, fields)
	if err != nil {
		c.cfg.logger.Debugf("[WechatPay] %s: request rejected locally: %v", op.name, err)
		return nil, err
	}
	full, err := c.endpoint(op)
	if err != nil {
		return nil, err
	}
	if shouldDryRun(runOpts, full, body) {
		return nil, nil
	}

	raw, err := c.http.PostXML(ctx, full, body, op.needsCert)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	return c.validateResponse(raw)
}

func joinURL(base string, p string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	u.Path = path.Join(u.Path, p)
	return u.String(), nil
}

func timestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// =========================
// Payment
// =========================

type PaymentService struct{ c *Client }

// UnifiedOrder creates an order and returns the prepay token.
func (s *PaymentService) UnifiedOrder(ctx context.Context, req *payment.UnifiedOrderRequest, runOpts ...RunOption) (*payment.UnifiedOrderResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opUnifiedOrder, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return payment.ParseUnifiedOrder(p), nil
}

// OrderQuery returns current order state by transaction id or merchant
// order number.
func (s *PaymentService) OrderQuery(ctx context.Context, req *payment.OrderQueryRequest, runOpts ...RunOption) (*payment.OrderQueryResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opOrderQuery, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return payment.ParseOrderQuery(p), nil
}

// CloseOrder closes an unpaid order.
func (s *PaymentService) CloseOrder(ctx context.Context, req *payment.CloseOrderRequest, runOpts ...RunOption) (Params, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	return s.c.do(ctx, opCloseOrder, req.Fields(), runOpts...)
}

// ShortURL shortens a native payment code URL.
func (s *PaymentService) ShortURL(ctx context.Context, req *payment.ShortURLRequest, runOpts ...RunOption) (*payment.ShortURLResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opShortURL, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return payment.ParseShortURL(p), nil
}

// GetSignKey exchanges the production partner key for the sandbox sign
// key. It always targets the sandbox base URL.
func (s *PaymentService) GetSignKey(ctx context.Context, runOpts ...RunOption) (*payment.GetSignKeyResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	p, err := s.c.do(ctx, opGetSignKey, Params{}, runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return payment.ParseGetSignKey(p), nil
}

// JSAPIParams runs the two-step JSAPI flow: create the order, then build
// the independently signed payload for the in-page payment invocation.
// The second step is never attempted when order creation fails.
func (s *PaymentService) JSAPIParams(ctx context.Context, req *payment.UnifiedOrderRequest, runOpts ...RunOption) (*payment.JSAPIParams, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	orderReq := *req
	if orderReq.TradeType == "" {
		orderReq.TradeType = consts.TradeTypeJSAPI
	}

	order, err := s.UnifiedOrder(ctx, &orderReq, runOpts...)
	if err != nil || order == nil {
		return nil, err
	}

	signType := s.c.cfg.signType
	if signType == "" {
		signType = consts.SignTypeMD5
	}
	out := &payment.JSAPIParams{
		AppID:     s.c.cfg.appID,
		TimeStamp: timestamp(),
		NonceStr:  nonce(),
		Package:   "prepay_id=" + order.PrepayID,
		SignType:  string(signType),
	}
	sign, err := s.c.Sign(Params{
		"appId":     out.AppID,
		"timeStamp": out.TimeStamp,
		"nonceStr":  out.NonceStr,
		"package":   out.Package,
		"signType":  out.SignType,
	})
	if err != nil {
		return nil, err
	}
	out.PaySign = sign
	return out, nil
}

// AppParams runs the two-step in-app flow: create the order with trade
// type APP, then build the signed payload for the mobile SDK invocation.
func (s *PaymentService) AppParams(ctx context.Context, req *payment.UnifiedOrderRequest, runOpts ...RunOption) (*payment.AppParams, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	orderReq := *req
	if orderReq.TradeType == "" {
		orderReq.TradeType = consts.TradeTypeApp
	}

	order, err := s.UnifiedOrder(ctx, &orderReq, runOpts...)
	if err != nil || order == nil {
		return nil, err
	}

	out := &payment.AppParams{
		AppID:     s.c.cfg.appID,
		PartnerID: s.c.cfg.mchID,
		PrepayID:  order.PrepayID,
		Package:   "Sign=WXPay",
		NonceStr:  nonce(),
		TimeStamp: timestamp(),
	}
	sign, err := s.c.Sign(Params{
		"appid":     out.AppID,
		"partnerid": out.PartnerID,
		"prepayid":  out.PrepayID,
		"package":   out.Package,
		"noncestr":  out.NonceStr,
		"timestamp": out.TimeStamp,
	})
	if err != nil {
		return nil, err
	}
	out.Sign = sign
	return out, nil
}

// =========================
// Refund
// =========================

type RefundService struct{ c *Client }

// Refund issues a refund against an order. Requires the merchant
// certificate.
func (s *RefundService) Refund(ctx context.Context, req *refund.RefundRequest, runOpts ...RunOption) (*refund.RefundResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opRefund, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return refund.ParseRefund(p), nil
}

// Query returns refund state by any of the four identifiers.
func (s *RefundService) Query(ctx context.Context, req *refund.QueryRequest, runOpts ...RunOption) (*refund.QueryResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opRefundQuery, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return refund.ParseQuery(p), nil
}

// =========================
// Red packet
// =========================

type RedPacketService struct{ c *Client }

// Send sends a cash red packet. Requires the merchant certificate.
func (s *RedPacketService) Send(ctx context.Context, req *redpacket.SendRequest, runOpts ...RunOption) (*redpacket.SendResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opRedPacketSend, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return redpacket.ParseSend(p), nil
}

// Query returns red packet state by merchant bill number.
func (s *RedPacketService) Query(ctx context.Context, req *redpacket.QueryRequest, runOpts ...RunOption) (*redpacket.QueryResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opRedPacketQuery, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return redpacket.ParseQuery(p), nil
}

// =========================
// Transfer
// =========================

type TransferService struct{ c *Client }

// Send transfers funds to a user balance. Requires the merchant
// certificate.
func (s *TransferService) Send(ctx context.Context, req *transfer.SendRequest, runOpts ...RunOption) (*transfer.SendResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opTransferSend, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return transfer.ParseSend(p), nil
}

// Query returns transfer state by merchant trade number.
func (s *TransferService) Query(ctx context.Context, req *transfer.QueryRequest, runOpts ...RunOption) (*transfer.QueryResponse, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}
	p, err := s.c.do(ctx, opTransferQuery, req.Fields(), runOpts...)
	if err != nil || p == nil {
		return nil, err
	}
	return transfer.ParseQuery(p), nil
}

// =========================
// Bill
// =========================

type BillService struct{ c *Client }

// Download fetches a reconciliation statement. The success body is
// tabular text rather than XML, so the XML parse failure is the expected
// path and triggers the statement parser; a well-formed XML body means
// the gateway declared an error.
func (s *BillService) Download(ctx context.Context, req *bill.DownloadRequest, runOpts ...RunOption) (*bill.Statement, error) {
	if s == nil || s.c == nil {
		return nil, errors.New("client is nil")
	}
	if req == nil {
		return nil, &MissingFieldsError{Fields: []string{"request"}}
	}

	p, err := s.c.do(ctx, opDownloadBill, req.Fields(), runOpts...)
	var parseErr *XMLParseError
	if errors.As(err, &parseErr) {
		st, stErr := bill.Parse(parseErr.Raw)
		if stErr != nil {
			return nil, parseErr
		}
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		// Dry run.
		return nil, nil
	}
	return nil, &ProtocolError{Message: "bill download returned no statement data"}
}
