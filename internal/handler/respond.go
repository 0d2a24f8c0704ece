package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/apperr"
)

// writeError sends the failure's status and body unchanged.
func writeError(c *gin.Context, err error) int {
	e := apperr.From(err)
	contentType := "text/plain; charset=utf-8"
	if json.Valid(e.Body) {
		contentType = "application/json"
	}
	c.Data(e.Status, contentType, e.Body)
	return e.Status
}
