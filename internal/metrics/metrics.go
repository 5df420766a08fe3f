// Package metrics exposes Prometheus instruments for the dashboard server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for backend calls.
const (
	OutcomeOK        = "ok"
	OutcomeHTTPError = "http_error"
	OutcomeNetwork   = "network_error"
	OutcomeDecode    = "decode_error"
)

// Metrics groups every instrument the server records.
type Metrics struct {
	BackendRequests *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ActiveSessions  prometheus.Gauge
	Syncs           *prometheus.CounterVec
	StaleResponses  prometheus.Counter

	handler http.Handler
}

// New registers all instruments on reg. Pass prometheus.NewRegistry() in
// tests to avoid collisions with the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_backend_requests_total",
			Help: "Country API calls by operation and outcome.",
		}, []string{"op", "outcome"}),
		BackendDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_backend_request_duration_seconds",
			Help:    "Country API call latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Dashboard HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "Dashboard HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Page sessions currently held in memory.",
		}),
		Syncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_syncs_total",
			Help: "Sync actions by result.",
		}, []string{"result"}),
		StaleResponses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_stale_country_responses_total",
			Help: "Country responses discarded because a newer load was issued.",
		}),
	}

	reg.MustRegister(
		m.BackendRequests,
		m.BackendDuration,
		m.HTTPRequests,
		m.HTTPDuration,
		m.ActiveSessions,
		m.Syncs,
		m.StaleResponses,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// RecordBackend records one country API call. Safe on a nil receiver.
func (m *Metrics) RecordBackend(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.BackendRequests.WithLabelValues(op, outcome).Inc()
	m.BackendDuration.WithLabelValues(op).Observe(d.Seconds())
}

// RecordHTTP records one served request. Safe on a nil receiver.
func (m *Metrics) RecordHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordSync counts a finished sync action. Safe on a nil receiver.
func (m *Metrics) RecordSync(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "failed"
	}
	m.Syncs.WithLabelValues(result).Inc()
}

// RecordStale counts a discarded out-of-order country response. Safe on a nil receiver.
func (m *Metrics) RecordStale() {
	if m == nil {
		return
	}
	m.StaleResponses.Inc()
}

// SetSessions updates the live session gauge. Safe on a nil receiver.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}
