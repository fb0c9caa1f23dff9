package signature

import (
	"strings"
	"testing"

	"github.com/alfredzh/wechat-pay/consts"
)

func TestCanonicalSortsByByteValue(t *testing.T) {
	got := Canonical(map[string]string{
		"total_fee":    "100",
		"appid":        "wx1",
		"body":         "T",
		"out_trade_no": "1",
	})
	want := "appid=wx1&body=T&out_trade_no=1&total_fee=100"
	if got != want {
		t.Fatalf("canonical = %q, want %q", got, want)
	}
}

func TestCanonicalExcludesSignAndEmptyValues(t *testing.T) {
	got := Canonical(map[string]string{
		"a":    "1",
		"b":    "",
		"sign": "DEADBEEF",
	})
	if got != "a=1" {
		t.Fatalf("canonical = %q, want %q", got, "a=1")
	}

	if got := Canonical(nil); got != "" {
		t.Fatalf("canonical of empty input = %q, want empty string", got)
	}
}

func TestSignKnownVectors(t *testing.T) {
	params := map[string]string{"b": "2", "a": "1"}

	md5Sig, err := Sign(params, "key1", consts.SignTypeMD5)
	if err != nil {
		t.Fatalf("md5 sign: %v", err)
	}
	if md5Sig != "93315EAE3E8601A09DA81A36ED294D04" {
		t.Fatalf("md5 signature = %q", md5Sig)
	}

	hmacSig, err := Sign(params, "key1", consts.SignTypeHMACSHA256)
	if err != nil {
		t.Fatalf("hmac sign: %v", err)
	}
	if hmacSig != "E8C61CBDF6D8C4BBEDF484A4C362E5EA8FEEF2EBB458B52AFBEEA4B23264813C" {
		t.Fatalf("hmac signature = %q", hmacSig)
	}

	empty, err := Sign(nil, "key1", consts.SignTypeMD5)
	if err != nil {
		t.Fatalf("empty sign: %v", err)
	}
	if empty != "15C1EB19334A8607C16133D8B62627A3" {
		t.Fatalf("empty-map signature = %q", empty)
	}
}

func TestSignIsPureAndUpperCase(t *testing.T) {
	params := map[string]string{"out_trade_no": "1", "total_fee": "100"}

	first, err := Sign(params, "secret", "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	second, err := Sign(params, "secret", consts.SignTypeMD5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if first != second {
		t.Fatalf("signing is not deterministic: %q vs %q", first, second)
	}
	if first != strings.ToUpper(first) {
		t.Fatalf("signature must be upper-case hex, got %q", first)
	}

	other, err := Sign(params, "other-secret", consts.SignTypeMD5)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if other == first {
		t.Fatalf("changing the key must change the signature")
	}
}

func TestSignRejectsUnknownSignType(t *testing.T) {
	if _, err := Sign(nil, "k", "SHA1"); err == nil {
		t.Fatalf("expected error for unsupported sign type")
	}
}

func TestCanonicalIsPermutationIndependent(t *testing.T) {
	a := map[string]string{"x": "1", "y": "2", "z": "3"}
	b := map[string]string{"z": "3", "x": "1", "y": "2"}
	if Canonical(a) != Canonical(b) {
		t.Fatalf("canonical string depends on insertion order")
	}
}
