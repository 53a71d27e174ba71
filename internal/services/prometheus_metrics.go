package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	MetricGatewayRequest      = "gateway.request"
	MetricDashboardLoad       = "dashboard.load"
	MetricUIAction            = "ui.action"
	MetricCircuitBreakerState = "circuit_breaker.state"
	MetricIdentityResolved    = "identity.resolved"
)

type PrometheusMetrics struct {
	gatewayRequests     *prometheus.CounterVec
	gatewayDuration     *prometheus.HistogramVec
	dashboardLoads      *prometheus.CounterVec
	uiActions           *prometheus.CounterVec
	circuitBreakerState *prometheus.GaugeVec
	identityResolutions *prometheus.CounterVec
}

// NewPrometheusMetrics registers the app metrics with the default registry
func NewPrometheusMetrics() MetricsRecorderInterface {
	return NewPrometheusMetricsWithRegistry(prometheus.DefaultRegisterer)
}

func NewPrometheusMetricsWithRegistry(reg prometheus.Registerer) *PrometheusMetrics {
	factory := promauto.With(reg)

	return &PrometheusMetrics{
		gatewayRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_gateway_requests_total",
				Help: "Total number of backend API requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		gatewayDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "miniapp_gateway_request_duration_seconds",
				Help:    "Backend API request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		dashboardLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_dashboard_loads_total",
				Help: "Dashboard loads by result (started, applied, superseded)",
			},
			[]string{"result"},
		),
		uiActions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_ui_actions_total",
				Help: "User interactions handled by the mini app",
			},
			[]string{"action"},
		),
		circuitBreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "miniapp_circuit_breaker_state",
				Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
			},
			[]string{"service"},
		),
		identityResolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "miniapp_identity_resolutions_total",
				Help: "Identity resolutions by source and result",
			},
			[]string{"source", "result"},
		),
	}
}

func (m *PrometheusMetrics) IncrementCounter(name string, tags map[string]string) {
	switch name {
	case MetricGatewayRequest:
		m.gatewayRequests.WithLabelValues(tags["operation"], tags["outcome"]).Inc()
	case MetricDashboardLoad:
		if result := tags["result"]; result != "" {
			m.dashboardLoads.WithLabelValues(result).Inc()
		}
	case MetricUIAction:
		if action := tags["action"]; action != "" {
			m.uiActions.WithLabelValues(action).Inc()
		}
	case MetricIdentityResolved:
		m.identityResolutions.WithLabelValues(tags["source"], tags["result"]).Inc()
	}
}

func (m *PrometheusMetrics) RecordDuration(name string, duration time.Duration, tags map[string]string) {
	switch name {
	case MetricGatewayRequest:
		m.gatewayDuration.WithLabelValues(tags["operation"]).Observe(duration.Seconds())
	}
}

func (m *PrometheusMetrics) RecordGauge(name string, value float64, tags map[string]string) {
	switch name {
	case MetricCircuitBreakerState:
		m.circuitBreakerState.WithLabelValues(tags["service"]).Set(value)
	}
}
