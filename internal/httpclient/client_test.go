package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func TestNextRequestIDIsUUIDv4(t *testing.T) {
	id := nextRequestID()

	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("request_id must be a valid UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("request_id must be UUID v4, got version %d (%q)", parsed.Version(), id)
	}
}

func TestPostXMLSetsContentTypeAndReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "text/xml; charset=utf-8" {
			t.Errorf("content type = %q", got)
		}
		_, _ = w.Write([]byte("<xml><return_code>SUCCESS</return_code></xml>"))
	}))
	defer ts.Close()

	c := New(ts.Client(), nil, nil, false, nil)
	raw, err := c.PostXML(context.Background(), ts.URL, []byte("<xml><a>1</a></xml>"), false)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if string(raw) != "<xml><return_code>SUCCESS</return_code></xml>" {
		t.Fatalf("unexpected body: %s", raw)
	}
}

func TestPostXMLReportsNon2xxAsHTTPStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.Client(), nil, nil, false, nil)
	_, err := c.PostXML(context.Background(), ts.URL, nil, false)
	statusErr, ok := err.(*HTTPStatusError)
	if !ok {
		t.Fatalf("expected HTTPStatusError, got %T (%v)", err, err)
	}
	if statusErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", statusErr.StatusCode)
	}
}

func TestPostXMLRequiresCertificateTransport(t *testing.T) {
	c := New(nil, nil, nil, false, nil)
	if c.HasCertificate() {
		t.Fatalf("client without cert transport must report HasCertificate false")
	}
	_, err := c.PostXML(context.Background(), "http://example.com", nil, true)
	if err == nil {
		t.Fatalf("expected error for missing certificate transport")
	}
}
