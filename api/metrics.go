package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus collectors
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	QuotesTotal         *prometheus.CounterVec
	QuoteTotalAmount    *prometheus.HistogramVec
}

// NewMetrics creates and registers the collectors on registry
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gym_cost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gym_cost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		QuotesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gym_cost_quotes_total",
				Help: "Total number of quote requests by plan and outcome",
			},
			[]string{"plan", "status"},
		),
		QuoteTotalAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gym_cost_quote_total_dollars",
				Help:    "Final quoted totals in dollars",
				Buckets: prometheus.ExponentialBuckets(50, 2, 8),
			},
			[]string{"plan"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.QuotesTotal,
		m.QuoteTotalAmount,
	)
	return m
}

// statusWriter captures the response status code
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument records request count and latency by route pattern
func (m *Metrics) instrument(pattern string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next(sw, r)

		m.HTTPRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		m.HTTPRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(sw.status)).Inc()
	}
}
