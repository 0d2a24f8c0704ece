package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides observability for upstream calls and the exposed operations.
type Metrics struct {
	registry *prometheus.Registry

	// Upstream calls by target ("identity", "device", "posture", "analytics", "app")
	// and outcome ("ok", "not_found", "error", "status_<code>").
	UpstreamCalls   *prometheus.CounterVec
	UpstreamLatency *prometheus.HistogramVec

	// Operation results by operation ("userdetails", "history", "debug") and status code.
	OperationOutcome *prometheus.CounterVec
}

// New creates a Metrics instance registered on its own registry so multiple
// instances can coexist in one process (tests).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		UpstreamCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "access_denied_upstream_calls_total",
			Help: "Upstream calls by target and outcome",
		}, []string{"upstream", "outcome"}),

		UpstreamLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "access_denied_upstream_duration_seconds",
			Help:    "Duration of upstream calls by target",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"upstream"}),

		OperationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "access_denied_operation_results_total",
			Help: "Results of exposed operations by HTTP status",
		}, []string{"operation", "status"}),
	}
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(upstream, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamCalls.WithLabelValues(upstream, outcome).Inc()
	m.UpstreamLatency.WithLabelValues(upstream).Observe(d.Seconds())
}

// IncrementOutcome records the status returned by an exposed operation.
func (m *Metrics) IncrementOutcome(operation string, status int) {
	if m == nil {
		return
	}
	m.OperationOutcome.WithLabelValues(operation, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
