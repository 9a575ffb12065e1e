// Package metrics exposes Prometheus collectors for judgedesk.
// All recording methods are safe to call on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes
const (
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// Metrics holds the collectors registered on a private registry
type Metrics struct {
	registry        *prometheus.Registry
	refreshes       *prometheus.CounterVec
	remoteLatency   *prometheus.HistogramVec
	rejectedRecords *prometheus.CounterVec
	sanitizedScores *prometheus.CounterVec
	wsClients       prometheus.Gauge
}

// New creates the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgedesk_provider_refreshes_total",
				Help: "Provider refreshes by provider and outcome.",
			},
			[]string{"provider", "outcome"},
		),
		remoteLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "judgedesk_remote_request_duration_seconds",
				Help:    "Latency of event API requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "status"},
		),
		rejectedRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgedesk_remote_records_rejected_total",
				Help: "Event API records dropped by boundary validation.",
			},
			[]string{"endpoint"},
		),
		sanitizedScores: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "judgedesk_scores_sanitized_total",
				Help: "Scores that contributed nothing to a summary, by reason.",
			},
			[]string{"reason"},
		),
		wsClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "judgedesk_websocket_clients",
			Help: "Connected WebSocket clients.",
		}),
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) RecordRefresh(provider, outcome string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(provider, outcome).Inc()
}

func (m *Metrics) ObserveRemote(endpoint, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.remoteLatency.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

func (m *Metrics) RecordRejected(endpoint string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rejectedRecords.WithLabelValues(endpoint).Add(float64(n))
}

func (m *Metrics) RecordSanitized(reason string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.sanitizedScores.WithLabelValues(reason).Add(float64(n))
}

func (m *Metrics) SetWSClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}
