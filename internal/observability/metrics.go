package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/restaurant-console/internal/auth"
	"github.com/spec-kit/restaurant-console/internal/domain"
)

// Metrics holds the console's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	registry        *prometheus.Registry
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	errorCount      *prometheus.CounterVec
	decisions       *prometheus.CounterVec
	logins          *prometheus.CounterVec
	sessionState    *prometheus.GaugeVec
}

// NewMetrics registers collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total HTTP requests served by the console.",
		}, []string{"method", "path", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		errorCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_http_errors_total",
			Help: "HTTP requests that ended in an error response.",
		}, []string{"method", "path", "code"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_guard_decisions_total",
			Help: "Authorization guard decisions.",
		}, []string{"path", "decision"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "console_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		sessionState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "console_session_state",
			Help: "1 for the current session state and role, 0 otherwise.",
		}, []string{"state", "role"}),
	}
	m.registry.MustRegister(
		m.requestCount,
		m.requestDuration,
		m.errorCount,
		m.decisions,
		m.logins,
		m.sessionState,
	)
	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordRequest counts a served request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestCount.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError counts an error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorCount.WithLabelValues(method, path, code).Inc()
}

// RecordDecision counts a guard decision.
func (m *Metrics) RecordDecision(path string, decision auth.Decision) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(path, decision.Kind.String()).Inc()
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

// RecordSession moves the session gauge to the new state.
func (m *Metrics) RecordSession(s domain.Session) {
	if m == nil {
		return
	}
	m.sessionState.Reset()
	role := ""
	if s.IsAuthenticated() {
		role = s.Identity.Role.String()
	}
	m.sessionState.WithLabelValues(s.State.String(), role).Set(1)
}
