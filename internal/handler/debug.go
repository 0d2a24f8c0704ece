package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/apperr"
	"access-denied-lite/internal/metrics"
	"access-denied-lite/internal/middleware"
	"access-denied-lite/internal/service"
)

// DebugHandler exposes the raw identity document when DEBUG is on.
type DebugHandler struct {
	Enabled  bool
	Identity service.IdentityFetcher
	Metrics  *metrics.Metrics
}

func (h *DebugHandler) Get(c *gin.Context) {
	if !h.Enabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Debugging is disabled."})
		h.Metrics.IncrementOutcome("debug", http.StatusForbidden)
		return
	}

	identity, err := h.Identity.FetchIdentity(c.Request.Context(), middleware.AssertionFromContext(c))
	if err != nil {
		status := apperr.StatusOf(err)
		c.JSON(status, gin.H{"error": "Failed to fetch identity."})
		h.Metrics.IncrementOutcome("debug", status)
		return
	}

	c.Data(http.StatusOK, "application/json", identity.Raw)
	h.Metrics.IncrementOutcome("debug", http.StatusOK)
}
