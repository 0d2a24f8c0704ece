package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/config"
)

// EnvHandler serves the settings the page needs to render itself.
type EnvHandler struct {
	Config config.Config
}

func (h *EnvHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ORGANIZATION_ID":   h.Config.OrganizationID,
		"ORGANIZATION_NAME": h.Config.OrganizationName,
		"TARGET_GROUP":      h.Config.TargetGroup,
		"DEBUG":             h.Config.Debug,
		"theme":             h.Config.Theme,
	})
}

func (h *EnvHandler) MethodNotAllowed(c *gin.Context) {
	c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
}
