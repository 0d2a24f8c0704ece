package auth

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signAssertion(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("gateway-key"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return tok
}

func TestDeviceIDFromAssertion(t *testing.T) {
	tok := signAssertion(t, jwt.MapClaims{"device_id": "dev-1", "sub": "user-1"})
	if got := DeviceIDFromAssertion(tok); got != "dev-1" {
		t.Fatalf("expected dev-1, got %q", got)
	}

	tok = signAssertion(t, jwt.MapClaims{"sub": "user-1"})
	if got := DeviceIDFromAssertion(tok); got != "" {
		t.Fatalf("expected empty device id, got %q", got)
	}
}

func TestDeviceIDFromAssertion_PaddedPayload(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"device_id":"dev-pad"}`))
	if got := DeviceIDFromAssertion("h." + payload + ".s"); got != "dev-pad" {
		t.Fatalf("expected dev-pad, got %q", got)
	}
}

func TestDeviceIDFromAssertion_Malformed(t *testing.T) {
	enc := base64.RawURLEncoding.EncodeToString
	cases := []string{
		"",
		"no-dots",
		"only.two",
		"a.b.c.d",
		"a..c",
		"a.!!!not-base64!!!.c",
		"a." + enc([]byte("not json")) + ".c",
		"a." + enc([]byte(`["device_id"]`)) + ".c",
		"a." + enc([]byte(`null`)) + ".c",
		"a." + enc([]byte(`{"device_id":42}`)) + ".c",
		"a." + enc([]byte(`{"device_id":"trunc`)) + ".c",
	}
	for _, tc := range cases {
		if got := DeviceIDFromAssertion(tc); got != "" {
			t.Fatalf("expected empty device id for %q, got %q", tc, got)
		}
	}
}

func TestAssertionFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := AssertionFromRequest(req); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}

	req.AddCookie(&http.Cookie{Name: AssertionCookie, Value: "from-cookie"})
	if got := AssertionFromRequest(req); got != "from-cookie" {
		t.Fatalf("expected cookie value, got %q", got)
	}

	req.Header.Set(AssertionHeader, "from-header")
	if got := AssertionFromRequest(req); got != "from-header" {
		t.Fatalf("expected header value, got %q", got)
	}
}

// FuzzDeviceIDFromAssertion: arbitrary input must never panic.
func FuzzDeviceIDFromAssertion(f *testing.F) {
	f.Add(signAssertion(f, jwt.MapClaims{"device_id": "dev-1"}))
	f.Add("")
	f.Add("not.a.jwt")
	f.Add("eyJhbGciOiJub25lIn0.eyJkZXZpY2VfaWQiOiJ4In0.")

	f.Fuzz(func(t *testing.T, input string) {
		_ = DeviceIDFromAssertion(input)
	})
}
