// Package metrics exposes the Prometheus collectors for the backend:
// agent activity, model latency, notification sends, and HTTP traffic.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "daybook"

// Metrics bundles every collector the backend reports. All methods are
// nil-safe so components can run unmetered in tests.
type Metrics struct {
	agentInvocations  *prometheus.CounterVec
	toolExecutions    *prometheus.CounterVec
	modelDuration     *prometheus.HistogramVec
	notificationSends *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// MustNew constructs the collector set on the given registerer. A nil
// registerer falls back to the global one. Collectors already present on
// the registerer are reused, so repeated construction (tests, multiple
// wiring paths) does not panic.
func MustNew(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Metrics{
		agentInvocations: mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "invocations_total",
				Help:      "Agent invocations by outcome.",
			},
			[]string{"outcome"},
		)),
		toolExecutions: mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "tool_executions_total",
				Help:      "Tool executions by action and outcome.",
			},
			[]string{"action", "outcome"},
		)),
		modelDuration: mustRegister(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "model_request_duration_seconds",
				Help:      "Wall time of one model invocation including its tool loop.",
				Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10),
			},
			[]string{"outcome"},
		)),
		notificationSends: mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "scheduler",
				Name:      "notification_sends_total",
				Help:      "Reminder notification sends by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		)),
		httpRequests: mustRegister(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route, and status code.",
			},
			[]string{"method", "route", "status"},
		)),
		httpDuration: mustRegister(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)),
	}
}

// mustRegister registers the collector, reusing an existing one when the
// registerer already has it.
func mustRegister[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector.(C)
		}
		panic(err)
	}
	return c
}

// Outcome labels shared across collectors.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// IncAgentInvocation counts one agent invocation.
func (m *Metrics) IncAgentInvocation(outcome string) {
	if m == nil {
		return
	}
	m.agentInvocations.WithLabelValues(outcome).Inc()
}

// IncToolExecution counts one tool execution.
func (m *Metrics) IncToolExecution(action, outcome string) {
	if m == nil {
		return
	}
	m.toolExecutions.WithLabelValues(action, outcome).Inc()
}

// ObserveModelDuration records the wall time of one model invocation.
func (m *Metrics) ObserveModelDuration(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.modelDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// IncNotificationSend counts one reminder notification attempt.
func (m *Metrics) IncNotificationSend(channel, outcome string) {
	if m == nil {
		return
	}
	m.notificationSends.WithLabelValues(channel, outcome).Inc()
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
