package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AssertionHeader = "Cf-Access-Jwt-Assertion"
	AssertionCookie = "CF_Authorization"
)

// AssertionFromRequest returns the session assertion issued by the gateway,
// preferring the header over the cookie. Empty means no session.
func AssertionFromRequest(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(AssertionHeader)); v != "" {
		return v
	}
	if c, err := r.Cookie(AssertionCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// PayloadClaims decodes the payload segment of a compact token without
// verifying it. The signature is checked upstream by the gateway.
func PayloadClaims(assertion string) (jwt.MapClaims, bool) {
	parts := strings.Split(assertion, ".")
	if len(parts) != 3 || parts[1] == "" {
		return nil, false
	}

	raw, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil || claims == nil {
		return nil, false
	}
	return claims, true
}

// DeviceIDFromAssertion is the fast path for device resolution. Any decode
// failure yields "".
func DeviceIDFromAssertion(assertion string) string {
	claims, ok := PayloadClaims(assertion)
	if !ok {
		return ""
	}
	deviceID, _ := claims["device_id"].(string)
	return deviceID
}
