// Package metrics provides Prometheus metrics collection for the reconciliation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// ReconciliationsTotal counts reconciliations by mode and report status.
	ReconciliationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliations_total",
			Help: "Total number of reconciliations",
		},
		[]string{"mode", "status"},
	)

	// ReconciliationDuration tracks end-to-end engine time per mode.
	ReconciliationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reconciliation_duration_seconds",
			Help:    "Reconciliation duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"mode"},
	)

	// SolutionsFound tracks how many combinations the exhaustive search returned.
	SolutionsFound = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reconciliation_solutions_found",
			Help:    "Number of combinations returned by the exhaustive search",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50, 100},
		},
	)

	// SearchFallbacksTotal counts exhaustive searches replaced by the greedy selector.
	SearchFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reconciliation_search_fallbacks_total",
			Help: "Total number of exhaustive searches that fell back to the greedy selector",
		},
		[]string{"reason"},
	)

	// CircuitBreakerState reports 0 (closed), 1 (open) or 2 (half-open) per breaker.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"name"},
	)

	// RequestLogEntriesTotal counts request-log entries by outcome.
	RequestLogEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "request_log_entries_total",
			Help: "Request-log entries by outcome (enqueued, dropped, written, failed)",
		},
		[]string{"result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordReconciliation records metrics for a finished reconciliation.
func RecordReconciliation(duration time.Duration, mode, status string) {
	ReconciliationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	ReconciliationsTotal.WithLabelValues(mode, status).Inc()
}

// RecordSolutionsFound records the size of an exhaustive search result.
func RecordSolutionsFound(n int) {
	SolutionsFound.Observe(float64(n))
}

// RecordSearchFallback records an exhaustive search replaced by the greedy selector.
func RecordSearchFallback(reason string) {
	SearchFallbacksTotal.WithLabelValues(reason).Inc()
}

// SetCircuitBreakerState publishes the numeric state of the named breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordRequestLogEntries adds n request-log entries with the given outcome.
func RecordRequestLogEntries(result string, n int) {
	if n <= 0 {
		return
	}
	RequestLogEntriesTotal.WithLabelValues(result).Add(float64(n))
}
