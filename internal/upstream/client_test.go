package upstream

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"access-denied-lite/internal/config"
	"access-denied-lite/internal/metrics"
)

type countingServer struct {
	*httptest.Server
	calls atomic.Int32
}

func newCountingServer(t *testing.T, h http.HandlerFunc) *countingServer {
	t.Helper()
	cs := &countingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.calls.Add(1)
		h(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func newTestClient(accessURL, apiURL string) *Client {
	cfg := config.Config{
		AccessBaseURL:   accessURL,
		APIBaseURL:      apiURL,
		AccountID:       "acct-1",
		BearerToken:     "svc-token",
		UpstreamTimeout: 2 * time.Second,
		IdentityRetries: 1,
	}
	return New(cfg, zerolog.Nop(), metrics.New())
}
