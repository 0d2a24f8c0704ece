package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/metrics"
	"access-denied-lite/internal/middleware"
	"access-denied-lite/internal/model"
)

type LoginHistoryFetcher interface {
	FetchLoginHistory(ctx context.Context, assertion string) (*model.LoginHistory, error)
}

type HistoryHandler struct {
	History LoginHistoryFetcher
	Metrics *metrics.Metrics
}

func (h *HistoryHandler) Get(c *gin.Context) {
	history, err := h.History.FetchLoginHistory(c.Request.Context(), middleware.AssertionFromContext(c))
	if err != nil {
		h.Metrics.IncrementOutcome("history", writeError(c, err))
		return
	}

	c.JSON(http.StatusOK, history)
	h.Metrics.IncrementOutcome("history", http.StatusOK)
}
