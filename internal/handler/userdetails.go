package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/metrics"
	"access-denied-lite/internal/middleware"
	"access-denied-lite/internal/service"
)

type UserDetailsHandler struct {
	Users   service.UserResolver
	Metrics *metrics.Metrics
}

func (h *UserDetailsHandler) Get(c *gin.Context) {
	details, err := h.Users.ResolveUserDetails(c.Request.Context(), middleware.AssertionFromContext(c))
	if err != nil {
		h.Metrics.IncrementOutcome("userdetails", writeError(c, err))
		return
	}

	c.JSON(http.StatusOK, details)
	h.Metrics.IncrementOutcome("userdetails", http.StatusOK)
}
