package wechatpay

import (
	"crypto/tls"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/stremovskyy/recorder"
	"golang.org/x/crypto/pkcs12"

	"github.com/alfredzh/wechat-pay/consts"
	"github.com/alfredzh/wechat-pay/log"
)

type Option func(*config) error

type config struct {
	appID      string
	partnerKey string
	mchID      string
	subMchID   string
	notifyURL  string
	sandbox    bool
	signType   consts.SignType

	baseURL        string
	sandboxBaseURL string

	httpClient *http.Client
	logger     log.Logger
	logBodies  bool
	recorder   recorder.Recorder

	certificate *tls.Certificate
	pfx         []byte
	pfxPassword string
}

func defaultConfig() config {
	return config{
		signType:       consts.SignTypeMD5,
		baseURL:        consts.ProductionBaseURL,
		sandboxBaseURL: consts.SandboxBaseURL,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		logger:         log.NewDefault(),
	}
}

// WithBaseURL overrides the production base URL.
func WithBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		if baseURL == "" {
			return errors.New("base url is empty")
		}
		cfg.baseURL = baseURL
		return nil
	}
}

// WithSandboxBaseURL overrides the sandbox base URL.
func WithSandboxBaseURL(baseURL string) Option {
	return func(cfg *config) error {
		if baseURL == "" {
			return errors.New("sandbox base url is empty")
		}
		cfg.sandboxBaseURL = baseURL
		return nil
	}
}

// WithAppID sets the public account / mini program application id.
func WithAppID(appID string) Option {
	return func(cfg *config) error {
		appID = strings.TrimSpace(appID)
		if appID == "" {
			return errors.New("app id is empty")
		}
		cfg.appID = appID
		return nil
	}
}

// WithPartnerKey sets the shared API secret used for signing.
func WithPartnerKey(key string) Option {
	return func(cfg *config) error {
		if key == "" {
			return errors.New("partner key is empty")
		}
		cfg.partnerKey = key
		return nil
	}
}

// WithMchID sets the merchant id.
func WithMchID(mchID string) Option {
	return func(cfg *config) error {
		mchID = strings.TrimSpace(mchID)
		if mchID == "" {
			return errors.New("merchant id is empty")
		}
		cfg.mchID = mchID
		return nil
	}
}

// WithSubMchID sets the sub-merchant id for marketplace/platform setups.
func WithSubMchID(subMchID string) Option {
	return func(cfg *config) error {
		cfg.subMchID = strings.TrimSpace(subMchID)
		return nil
	}
}

// WithNotifyURL sets the default payment notification callback URL.
func WithNotifyURL(notifyURL string) Option {
	return func(cfg *config) error {
		cfg.notifyURL = notifyURL
		return nil
	}
}

// WithSandbox points the client at the sandbox base URL set.
//
// The sandbox signs with an exchanged key: call Payment().GetSignKey on a
// production-keyed client first and configure the returned key here.
func WithSandbox() Option {
	return func(cfg *config) error {
		cfg.sandbox = true
		return nil
	}
}

// WithSignType selects the signature digest. Defaults to MD5.
func WithSignType(signType consts.SignType) Option {
	return func(cfg *config) error {
		switch signType {
		case consts.SignTypeMD5, consts.SignTypeHMACSHA256:
			cfg.signType = signType
			return nil
		default:
			return fmt.Errorf("unsupported sign type: %q", signType)
		}
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return errors.New("http client is nil")
		}
		cfg.httpClient = client
		return nil
	}
}

// WithTimeout sets the http client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *config) error {
		if timeout <= 0 {
			return errors.New("timeout must be > 0")
		}
		cfg.httpClient.Timeout = timeout
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			cfg.logger = log.NopLogger{}
			return nil
		}
		cfg.logger = logger
		return nil
	}
}

// WithLogHTTPBodies enables verbose request/response body logging for debugging.
//
// Disabled by default because bodies may contain sensitive data.
func WithLogHTTPBodies(enabled bool) Option {
	return func(cfg *config) error {
		cfg.logBodies = enabled
		return nil
	}
}

// WithRecorder attaches a request/response recorder.
func WithRecorder(r recorder.Recorder) Option {
	return func(cfg *config) error {
		cfg.recorder = r
		return nil
	}
}

// WithCertificate configures the merchant TLS client certificate from a
// PEM certificate/key pair. Refund, red packet and transfer operations
// require it.
func WithCertificate(certPEM, keyPEM []byte) Option {
	return func(cfg *config) error {
		cert, err := tls.X509KeyPair(certPEM, keyPEM)
		if err != nil {
			return fmt.Errorf("load certificate: %w", err)
		}
		cfg.certificate = &cert
		return nil
	}
}

// WithCertificateFiles reads a PEM certificate/key pair from disk.
func WithCertificateFiles(certPath, keyPath string) Option {
	return func(cfg *config) error {
		certPEM, err := os.ReadFile(certPath)
		if err != nil {
			return err
		}
		keyPEM, err := os.ReadFile(keyPath)
		if err != nil {
			return err
		}
		return WithCertificate(certPEM, keyPEM)(cfg)
	}
}

// WithPKCS12 configures the merchant certificate from PKCS#12 (.p12)
// material as issued by the merchant platform. An empty password defaults
// to the merchant id at construction time.
func WithPKCS12(pfx []byte, password string) Option {
	return func(cfg *config) error {
		if len(pfx) == 0 {
			return errors.New("pkcs12 data is empty")
		}
		cfg.pfx = pfx
		cfg.pfxPassword = password
		return nil
	}
}

// WithPKCS12File reads PKCS#12 certificate material from disk.
func WithPKCS12File(path string, password string) Option {
	return func(cfg *config) error {
		pfx, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return WithPKCS12(pfx, password)(cfg)
	}
}

// finalize resolves deferred certificate material once all options ran,
// so WithPKCS12 does not depend on option ordering relative to WithMchID.
func (cfg *config) finalize() error {
	if cfg.appID == "" {
		return errors.New("app id is required; use WithAppID")
	}
	if cfg.partnerKey == "" {
		return errors.New("partner key is required; use WithPartnerKey")
	}
	if cfg.mchID == "" {
		return errors.New("merchant id is required; use WithMchID")
	}

	if cfg.certificate == nil && len(cfg.pfx) > 0 {
		password := cfg.pfxPassword
		if password == "" {
			password = cfg.mchID
		}
		cert, err := decodePKCS12(cfg.pfx, password)
		if err != nil {
			return err
		}
		cfg.certificate = cert
	}
	return nil
}

func decodePKCS12(pfx []byte, password string) (*tls.Certificate, error) {
	blocks, err := pkcs12.ToPEM(pfx, password)
	if err != nil {
		return nil, fmt.Errorf("decode pkcs12 certificate: %w", err)
	}
	var pemData []byte
	for _, b := range blocks {
		pemData = append(pemData, pem.EncodeToMemory(b)...)
	}
	cert, err := tls.X509KeyPair(pemData, pemData)
	if err != nil {
		return nil, fmt.Errorf("load pkcs12 key pair: %w", err)
	}
	return &cert, nil
}

// certHTTPClient builds the client-certificate transport sharing the
// plain client's timeout.
func (cfg *config) certHTTPClient() *http.Client {
	if cfg.certificate == nil {
		return nil
	}
	timeout := 30 * time.Second
	if cfg.httpClient != nil && cfg.httpClient.Timeout > 0 {
		timeout = cfg.httpClient.Timeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{Certificates: []tls.Certificate{*cfg.certificate}},
		},
	}
}
