// Package upstream talks to the access-control, device, analytics and
// application metadata services. Every failure it returns is an *apperr.Error.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"access-denied-lite/internal/config"
	"access-denied-lite/internal/logger"
	"access-denied-lite/internal/metrics"
)

const maxBodyBytes = 4 << 20

type Client struct {
	http    *http.Client
	log     zerolog.Logger
	metrics *metrics.Metrics

	accessBaseURL   string
	apiBaseURL      string
	accountID       string
	bearerToken     string
	identityRetries int
}

func New(cfg config.Config, log zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		http:            &http.Client{Timeout: cfg.UpstreamTimeout},
		log:             logger.Component(log, "upstream"),
		metrics:         m,
		accessBaseURL:   cfg.AccessBaseURL,
		apiBaseURL:      cfg.APIBaseURL,
		accountID:       cfg.AccountID,
		bearerToken:     cfg.BearerToken,
		identityRetries: cfg.IdentityRetries,
	}
}

type response struct {
	status int
	body   []byte
}

func (r response) ok() bool { return r.status >= 200 && r.status < 300 }

// do executes req and reads the whole body. A non-nil error means the call
// itself failed (transport, timeout, unreadable body); HTTP statuses are
// returned to the caller for interpretation.
func (c *Client) do(req *http.Request, target string) (response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(target, "error", time.Since(start))
		return response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.metrics.ObserveUpstream(target, "error", time.Since(start))
		return response{}, fmt.Errorf("read %s response: %w", target, err)
	}

	c.metrics.ObserveUpstream(target, outcome(resp.StatusCode), time.Since(start))
	return response{status: resp.StatusCode, body: body}, nil
}

func outcome(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "ok"
	case status == http.StatusNotFound:
		return "not_found"
	default:
		return "status_" + strconv.Itoa(status)
	}
}

// newServiceRequest builds a request authenticated with the process-wide
// service credential.
func (c *Client) newServiceRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	return req, nil
}
