// Package metrics provides Prometheus metrics for the moderator service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	SessionsStarted prometheus.Counter
	InputsTotal     *prometheus.CounterVec
	InputDuration   *prometheus.HistogramVec
	RuleViolations  *prometheus.CounterVec
	SessionsActive  prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moderator_sessions_started_total",
				Help: "Total number of game sessions started.",
			},
		),
		InputsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderator_inputs_total",
				Help: "Total moderator inputs processed by phase and status.",
			},
			[]string{"phase", "status"},
		),
		InputDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moderator_input_duration_seconds",
				Help:    "Input processing duration by phase.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"phase"},
		),
		RuleViolations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moderator_rule_violations_total",
				Help: "Total rejected inputs by error code.",
			},
			[]string{"code"},
		),
		SessionsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "moderator_sessions_active",
				Help: "Number of sessions currently held in memory.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.SessionsStarted)
	reg.MustRegister(m.InputsTotal)
	reg.MustRegister(m.InputDuration)
	reg.MustRegister(m.RuleViolations)
	reg.MustRegister(m.SessionsActive)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordInput increments the input counter.
func (m *Metrics) RecordInput(phase, status string) {
	m.InputsTotal.WithLabelValues(phase, status).Inc()
}

// RecordViolation increments the rejected-input counter.
func (m *Metrics) RecordViolation(code string) {
	m.RuleViolations.WithLabelValues(code).Inc()
}

// ObserveInputDuration records input processing duration.
func (m *Metrics) ObserveInputDuration(phase string, seconds float64) {
	m.InputDuration.WithLabelValues(phase).Observe(seconds)
}
