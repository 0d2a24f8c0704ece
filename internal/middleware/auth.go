package middleware

import (
	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/auth"
)

const assertionContextKey = "assertion"

func AssertionFromContext(c *gin.Context) string {
	v, ok := c.Get(assertionContextKey)
	if !ok {
		return auth.AssertionFromRequest(c.Request)
	}
	s, _ := v.(string)
	return s
}

// ExtractAssertion stores the gateway session assertion on the context. It
// never rejects: handlers decide how a missing session is reported.
func ExtractAssertion() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(assertionContextKey, auth.AssertionFromRequest(c.Request))
		c.Next()
	}
}
