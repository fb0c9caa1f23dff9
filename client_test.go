package wechatpay

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"errors"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alfredzh/wechat-pay/bill"
	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/internal/signature"
	"github.com/alfredzh/wechat-pay/internal/xmlcodec"
	"github.com/alfredzh/wechat-pay/payment"
	"github.com/alfredzh/wechat-pay/refund"
	"github.com/alfredzh/wechat-pay/transfer"
)

func newTestClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	base := []Option{
		WithAppID("wx1"),
		WithPartnerKey("key1"),
		WithMchID("mch1"),
		WithLogger(nil),
	}
	cli, err := NewClient(append(base, opts...)...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return cli.(*Client)
}

func signedResponse(t *testing.T, fields map[string]string, key string, signType consts.SignType) []byte {
	t.Helper()
	sign, err := signature.Sign(fields, key, signType)
	if err != nil {
		t.Fatalf("sign response: %v", err)
	}
	out := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["sign"] = sign
	return xmlcodec.Encode(out)
}

func decodeRequest(t *testing.T, r *http.Request) map[string]string {
	t.Helper()
	defer r.Body.Close()
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		t.Errorf("read request body: %v", err)
		return nil
	}
	fields, err := xmlcodec.Decode(raw)
	if err != nil {
		t.Errorf("decode request body: %v", err)
		return nil
	}
	return fields
}

func testCertPEM(t *testing.T) (certPEM, keyPEM []byte) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "merchant"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	return certPEM, keyPEM
}

func TestUnifiedOrderEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pay/unifiedorder" {
			http.NotFound(w, r)
			return
		}
		fields := decodeRequest(t, r)

		want, err := signature.Sign(fields, "key1", consts.SignTypeMD5)
		if err != nil || fields["sign"] != want {
			t.Errorf("request signature mismatch: got %q want %q (%v)", fields["sign"], want, err)
			http.Error(w, "bad sign", http.StatusBadRequest)
			return
		}
		if fields["appid"] != "wx1" || fields["mch_id"] != "mch1" {
			t.Errorf("identity defaults not applied: %v", fields)
		}
		if fields["nonce_str"] == "" {
			t.Errorf("nonce_str must be generated")
		}
		for k, v := range map[string]string{
			"body": "T", "out_trade_no": "1", "total_fee": "100",
			"spbill_create_ip": "1.2.3.4", "trade_type": "NATIVE", "product_id": "p1",
		} {
			if fields[k] != v {
				t.Errorf("field %s = %q, want %q", k, fields[k], v)
			}
		}

		_, _ = w.Write(signedResponse(t, map[string]string{
			"return_code": "SUCCESS",
			"result_code": "SUCCESS",
			"prepay_id":   "abc",
			"code_url":    "weixin://x",
			"appid":       "wx1",
			"mch_id":      "mch1",
		}, "key1", consts.SignTypeMD5))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL))
	res, err := c.Payment().UnifiedOrder(context.Background(), &payment.UnifiedOrderRequest{
		Body:           "T",
		OutTradeNo:     "1",
		TotalFee:       100,
		SpbillCreateIP: "1.2.3.4",
		TradeType:      consts.TradeTypeNative,
		ProductID:      "p1",
	})
	if err != nil {
		t.Fatalf("unified order: %v", err)
	}
	if res.PrepayID != "abc" || res.CodeURL != "weixin://x" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestUnifiedOrderMissingFieldsAggregated(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Payment().UnifiedOrder(context.Background(), &payment.UnifiedOrderRequest{Body: "T"})

	var me *MissingFieldsError
	if !errors.As(err, &me) {
		t.Fatalf("expected MissingFieldsError, got %T (%v)", err, err)
	}
	msg := err.Error()
	for _, want := range []string{"out_trade_no", "total_fee", "spbill_create_ip", "trade_type"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error must name %q, got %q", want, msg)
		}
	}
}

func TestUnifiedOrderConditionalRequirements(t *testing.T) {
	c := newTestClient(t, WithNotifyURL("https://merchant.example/notify"))

	_, err := c.Payment().UnifiedOrder(context.Background(), &payment.UnifiedOrderRequest{
		Body:           "T",
		OutTradeNo:     "1",
		TotalFee:       100,
		SpbillCreateIP: "1.2.3.4",
		TradeType:      consts.TradeTypeJSAPI,
	})
	var me *MissingFieldsError
	if !errors.As(err, &me) {
		t.Fatalf("expected MissingFieldsError, got %T (%v)", err, err)
	}
	if len(me.Fields) != 1 || me.Fields[0] != "openid|sub_openid" {
		t.Fatalf("unexpected missing fields: %v", me.Fields)
	}

	// The alternative satisfies the entry; a dry run proves the request
	// builds cleanly.
	_, err = c.Payment().UnifiedOrder(context.Background(), &payment.UnifiedOrderRequest{
		Body:           "T",
		OutTradeNo:     "1",
		TotalFee:       100,
		SpbillCreateIP: "1.2.3.4",
		TradeType:      consts.TradeTypeJSAPI,
		SubOpenID:      "sub-user",
	}, DryRun(func(string, []byte) {}))
	if err != nil {
		t.Fatalf("sub_openid must satisfy openid|sub_openid: %v", err)
	}
}

func TestResponseValidationOrderAndIdentityChecks(t *testing.T) {
	cases := []struct {
		name   string
		fields map[string]string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "protocol failure",
			fields: map[string]string{"return_code": "FAIL", "return_msg": "no route"},
			check: func(t *testing.T, err error) {
				var pe *ProtocolError
				if !errors.As(err, &pe) || pe.Message != "no route" {
					t.Fatalf("expected ProtocolError(no route), got %v", err)
				}
			},
		},
		{
			name: "business failure wins over success payload",
			fields: map[string]string{
				"return_code": "SUCCESS", "result_code": "FAIL",
				"err_code": "ORDERPAID", "err_code_des": "already paid",
			},
			check: func(t *testing.T, err error) {
				var be *BusinessError
				if !errors.As(err, &be) || be.Code != "ORDERPAID" {
					t.Fatalf("expected BusinessError(ORDERPAID), got %v", err)
				}
			},
		},
		{
			name: "appid mismatch beats valid signature",
			fields: map[string]string{
				"return_code": "SUCCESS", "result_code": "SUCCESS", "appid": "wx2",
			},
			check: func(t *testing.T, err error) {
				var ae *InvalidAppIDError
				if !errors.As(err, &ae) || ae.Got != "wx2" {
					t.Fatalf("expected InvalidAppIDError, got %v", err)
				}
			},
		},
		{
			name: "mch_id mismatch",
			fields: map[string]string{
				"return_code": "SUCCESS", "result_code": "SUCCESS", "mch_id": "other",
			},
			check: func(t *testing.T, err error) {
				var mche *InvalidMchIDError
				if !errors.As(err, &mche) || mche.Field != "mch_id" {
					t.Fatalf("expected InvalidMchIDError(mch_id), got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write(signedResponse(t, tc.fields, "key1", consts.SignTypeMD5))
			}))
			defer ts.Close()

			c := newTestClient(t, WithBaseURL(ts.URL))
			_, err := c.Payment().OrderQuery(context.Background(), &payment.OrderQueryRequest{OutTradeNo: "1"})
			tc.check(t, err)
		})
	}
}

func TestLowerCaseResponseSignatureIsRejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := map[string]string{
			"return_code":  "SUCCESS",
			"result_code":  "SUCCESS",
			"out_trade_no": "1",
		}
		sign, err := signature.Sign(fields, "key1", consts.SignTypeMD5)
		if err != nil {
			t.Errorf("sign: %v", err)
		}
		fields["sign"] = strings.ToLower(sign)
		_, _ = w.Write(xmlcodec.Encode(fields))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL))
	_, err := c.Payment().OrderQuery(context.Background(), &payment.OrderQueryRequest{OutTradeNo: "1"})
	var se *InvalidSignatureError
	if !errors.As(err, &se) {
		t.Fatalf("expected InvalidSignatureError for lower-case signature, got %v", err)
	}
}

func TestTransportErrorPropagates(t *testing.T) {
	c := newTestClient(t, WithBaseURL("http://127.0.0.1:1"), WithTimeout(250*time.Millisecond))
	_, err := c.Payment().OrderQuery(context.Background(), &payment.OrderQueryRequest{OutTradeNo: "1"})

	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %T (%v)", err, err)
	}
}

func TestHMACSignTypeEndToEnd(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := decodeRequest(t, r)
		if fields["sign_type"] != "HMAC-SHA256" {
			t.Errorf("sign_type field = %q", fields["sign_type"])
		}
		want, err := signature.Sign(fields, "key1", consts.SignTypeHMACSHA256)
		if err != nil || fields["sign"] != want {
			t.Errorf("hmac signature mismatch: got %q want %q (%v)", fields["sign"], want, err)
		}
		_, _ = w.Write(signedResponse(t, map[string]string{
			"return_code": "SUCCESS", "result_code": "SUCCESS", "out_trade_no": "1",
		}, "key1", consts.SignTypeHMACSHA256))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL), WithSignType(consts.SignTypeHMACSHA256))
	_, err := c.Payment().OrderQuery(context.Background(), &payment.OrderQueryRequest{OutTradeNo: "1"})
	if err != nil {
		t.Fatalf("order query: %v", err)
	}
}

func TestShortURLEscapesAfterSigning(t *testing.T) {
	longURL := "weixin://wxpay/bizpayurl?pr=abc&x=1"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := decodeRequest(t, r)
		if fields["long_url"] != url.QueryEscape(longURL) {
			t.Errorf("long_url must be percent-encoded on the wire, got %q", fields["long_url"])
		}
		// The signature covers the raw URL.
		raw := make(map[string]string, len(fields))
		for k, v := range fields {
			raw[k] = v
		}
		raw["long_url"] = longURL
		want, err := signature.Sign(raw, "key1", consts.SignTypeMD5)
		if err != nil || fields["sign"] != want {
			t.Errorf("signature mismatch over raw long_url: got %q want %q (%v)", fields["sign"], want, err)
		}
		_, _ = w.Write(signedResponse(t, map[string]string{
			"return_code": "SUCCESS", "result_code": "SUCCESS", "short_url": "weixin://short",
		}, "key1", consts.SignTypeMD5))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL))
	res, err := c.Payment().ShortURL(context.Background(), &payment.ShortURLRequest{LongURL: longURL})
	if err != nil {
		t.Fatalf("short url: %v", err)
	}
	if res.ShortURL != "weixin://short" {
		t.Fatalf("short_url = %q", res.ShortURL)
	}
}

func TestJSAPIParamsTwoStepFlow(t *testing.T) {
	var orderCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&orderCalls, 1)
		fields := decodeRequest(t, r)
		if fields["trade_type"] != "JSAPI" {
			t.Errorf("trade_type = %q", fields["trade_type"])
		}
		_, _ = w.Write(signedResponse(t, map[string]string{
			"return_code": "SUCCESS", "result_code": "SUCCESS",
			"appid": "wx1", "mch_id": "mch1", "prepay_id": "prepay-77",
		}, "key1", consts.SignTypeMD5))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL), WithNotifyURL("https://merchant.example/notify"))
	params, err := c.Payment().JSAPIParams(context.Background(), &payment.UnifiedOrderRequest{
		Body:           "T",
		OutTradeNo:     "1",
		TotalFee:       100,
		SpbillCreateIP: "1.2.3.4",
		OpenID:         "user-1",
	})
	if err != nil {
		t.Fatalf("jsapi params: %v", err)
	}
	if atomic.LoadInt32(&orderCalls) != 1 {
		t.Fatalf("expected exactly one order creation call, got %d", orderCalls)
	}
	if params.Package != "prepay_id=prepay-77" {
		t.Fatalf("package = %q", params.Package)
	}

	want, err := signature.Sign(map[string]string{
		"appId":     params.AppID,
		"timeStamp": params.TimeStamp,
		"nonceStr":  params.NonceStr,
		"package":   params.Package,
		"signType":  params.SignType,
	}, "key1", consts.SignTypeMD5)
	if err != nil {
		t.Fatalf("recompute pay sign: %v", err)
	}
	if params.PaySign != want {
		t.Fatalf("paySign = %q, want %q", params.PaySign, want)
	}
}

func TestJSAPIParamsSkipsStepTwoOnFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(xmlcodec.Encode(map[string]string{
			"return_code": "FAIL", "return_msg": "system busy",
		}))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL), WithNotifyURL("https://merchant.example/notify"))
	params, err := c.Payment().JSAPIParams(context.Background(), &payment.UnifiedOrderRequest{
		Body:           "T",
		OutTradeNo:     "1",
		TotalFee:       100,
		SpbillCreateIP: "1.2.3.4",
		OpenID:         "user-1",
	})
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
	if params != nil {
		t.Fatalf("no payment params may be built when order creation fails")
	}
}

func TestCertGatedOperationsFailFastWithoutCertificate(t *testing.T) {
	c := newTestClient(t)
	_, err := c.Refund().Refund(context.Background(), &refund.RefundRequest{
		OutTradeNo:  "1",
		OutRefundNo: "r1",
		TotalFee:    100,
		RefundFee:   50,
	})
	if !errors.Is(err, ErrCertificateRequired) {
		t.Fatalf("expected ErrCertificateRequired, got %v", err)
	}
}

func TestRefundDefaultsOpUserIDAndUsesCert(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/secapi/pay/refund" {
			http.NotFound(w, r)
			return
		}
		fields := decodeRequest(t, r)
		if fields["op_user_id"] != "mch1" {
			t.Errorf("op_user_id must default to the merchant id, got %q", fields["op_user_id"])
		}
		_, _ = w.Write(signedResponse(t, map[string]string{
			"return_code": "SUCCESS", "result_code": "SUCCESS",
			"appid": "wx1", "mch_id": "mch1",
			"refund_id": "rf-1", "out_refund_no": "r1", "refund_fee": "50",
		}, "key1", consts.SignTypeMD5))
	}))
	defer ts.Close()

	certPEM, keyPEM := testCertPEM(t)
	c := newTestClient(t, WithBaseURL(ts.URL), WithCertificate(certPEM, keyPEM))
	res, err := c.Refund().Refund(context.Background(), &refund.RefundRequest{
		OutTradeNo:  "1",
		OutRefundNo: "r1",
		TotalFee:    100,
		RefundFee:   50,
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}
	if res.RefundID != "rf-1" || res.RefundFee != 50 {
		t.Fatalf("unexpected refund response: %+v", res)
	}
}

func TestTransferUsesAlternateIdentitySpelling(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := decodeRequest(t, r)
		if fields["mch_appid"] != "wx1" || fields["mchid"] != "mch1" {
			t.Errorf("transfer identity defaults not applied: %v", fields)
		}
		if fields["appid"] != "" || fields["mch_id"] != "" {
			t.Errorf("transfer must not carry standard identity spellings: %v", fields)
		}
		_, _ = w.Write(xmlcodec.Encode(map[string]string{
			"return_code": "SUCCESS", "result_code": "SUCCESS",
			"mchid": "someone-else", "partner_trade_no": "t1",
		}))
	}))
	defer ts.Close()

	certPEM, keyPEM := testCertPEM(t)
	c := newTestClient(t, WithBaseURL(ts.URL), WithCertificate(certPEM, keyPEM))
	_, err := c.Transfer().Send(context.Background(), &transfer.SendRequest{
		PartnerTradeNo: "t1",
		OpenID:         "user-1",
		CheckName:      "NO_CHECK",
		Amount:         100,
		Desc:           "bonus",
		SpbillCreateIP: "1.2.3.4",
	})
	var mche *InvalidMchIDError
	if !errors.As(err, &mche) || mche.Field != "mchid" {
		t.Fatalf("expected InvalidMchIDError(mchid), got %v", err)
	}
}

func TestBillDownloadFallsBackToTabularParser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fields := decodeRequest(t, r)
		if fields["bill_date"] != "20260830" || fields["bill_type"] != "ALL" {
			t.Errorf("unexpected bill request: %v", fields)
		}
		_, _ = w.Write([]byte("trade_time,appid,out_trade_no\r\n`2026-08-30 10:00:00,`wx1,`order-1\r\ntotal,fee\r\n`1,`1.00\r\n"))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL))
	st, err := c.Bill().Download(context.Background(), &bill.DownloadRequest{
		BillDate: "20260830",
		BillType: consts.BillTypeAll,
	})
	if err != nil {
		t.Fatalf("download bill: %v", err)
	}
	rows := st.Rows()
	if len(rows) != 1 || rows[0]["out_trade_no"] != "order-1" {
		t.Fatalf("unexpected statement rows: %+v", rows)
	}
}

func TestBillDownloadReportsRemoteError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(xmlcodec.Encode(map[string]string{
			"return_code": "FAIL", "return_msg": "No Bill Exist",
		}))
	}))
	defer ts.Close()

	c := newTestClient(t, WithBaseURL(ts.URL))
	_, err := c.Bill().Download(context.Background(), &bill.DownloadRequest{
		BillDate: "20260830",
		BillType: consts.BillTypeAll,
	})
	var pe *ProtocolError
	if !errors.As(err, &pe) || pe.Message != "No Bill Exist" {
		t.Fatalf("expected ProtocolError(No Bill Exist), got %v", err)
	}
}

func TestSandboxModeAndGetSignKey(t *testing.T) {
	var path atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path.Store(r.URL.Path)
		_, _ = w.Write(xmlcodec.Encode(map[string]string{
			"return_code":     "SUCCESS",
			"mch_id":          "mch1",
			"sandbox_signkey": "sand-key",
		}))
	}))
	defer ts.Close()

	// GetSignKey pins to the sandbox base even in production mode.
	c := newTestClient(t, WithSandboxBaseURL(ts.URL))
	res, err := c.Payment().GetSignKey(context.Background())
	if err != nil {
		t.Fatalf("get sign key: %v", err)
	}
	if res.SandboxSignKey != "sand-key" {
		t.Fatalf("sandbox_signkey = %q", res.SandboxSignKey)
	}
	if got := path.Load().(string); got != "/pay/getsignkey" {
		t.Fatalf("path = %q", got)
	}

	// In sandbox mode every operation targets the sandbox base.
	c = newTestClient(t, WithSandbox(), WithSandboxBaseURL(ts.URL))
	full, err := c.endpoint(opOrderQuery)
	if err != nil {
		t.Fatalf("endpoint: %v", err)
	}
	if full != ts.URL+"/pay/orderquery" {
		t.Fatalf("sandbox endpoint = %q", full)
	}
}

func TestDryRunSkipsTransport(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer ts.Close()

	var captured []byte
	c := newTestClient(t, WithBaseURL(ts.URL))
	res, err := c.Payment().OrderQuery(context.Background(), &payment.OrderQueryRequest{OutTradeNo: "1"},
		DryRun(func(_ string, body []byte) { captured = body }))
	if err != nil {
		t.Fatalf("dry run: %v", err)
	}
	if res != nil {
		t.Fatalf("dry run must not produce a response")
	}
	if atomic.LoadInt32(&hits) != 0 {
		t.Fatalf("dry run must not hit the server")
	}
	if !strings.Contains(string(captured), "<out_trade_no>1</out_trade_no>") {
		t.Fatalf("captured payload missing request field: %s", captured)
	}
}

func TestParseNotificationRoundTrip(t *testing.T) {
	c := newTestClient(t)

	body := signedResponse(t, map[string]string{
		"return_code":    "SUCCESS",
		"result_code":    "SUCCESS",
		"appid":          "wx1",
		"mch_id":         "mch1",
		"out_trade_no":   "1",
		"transaction_id": "wx-txn-1",
		"total_fee":      "100",
	}, "key1", consts.SignTypeMD5)

	p, err := c.ParseNotification(body)
	if err != nil {
		t.Fatalf("parse notification: %v", err)
	}
	if p.Get("transaction_id") != "wx-txn-1" || p.GetInt64("total_fee") != 100 {
		t.Fatalf("unexpected notification fields: %v", p)
	}

	if !strings.Contains(string(ReplySuccess()), "<return_code>SUCCESS</return_code>") {
		t.Fatalf("unexpected success reply: %s", ReplySuccess())
	}
	if !strings.Contains(string(ReplyFail("bad sign")), "<return_msg>bad sign</return_msg>") {
		t.Fatalf("unexpected fail reply: %s", ReplyFail("bad sign"))
	}

	// A tampered notification fails signature validation.
	tampered := strings.Replace(string(body), "<total_fee>100</total_fee>", "<total_fee>1</total_fee>", 1)
	_, err = c.ParseNotification([]byte(tampered))
	var se *InvalidSignatureError
	if !errors.As(err, &se) {
		t.Fatalf("expected InvalidSignatureError for tampered body, got %v", err)
	}
}

func TestNewClientRequiresCoreConfig(t *testing.T) {
	if _, err := NewClient(WithAppID("wx1"), WithMchID("mch1")); err == nil {
		t.Fatalf("partner key must be required")
	}
	if _, err := NewClient(WithPartnerKey("k"), WithMchID("mch1")); err == nil {
		t.Fatalf("app id must be required")
	}
	if _, err := NewClient(WithAppID("wx1"), WithPartnerKey("k")); err == nil {
		t.Fatalf("merchant id must be required")
	}
}
