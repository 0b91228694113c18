package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	usecasecontract "github.com/socialjobs/workmatch/internal/usecase/contract"
)

// Metrics holds every collector exported on /metrics.
type Metrics struct {
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	TransitionsTotal   *prometheus.CounterVec
	BroadcastFanout    prometheus.Histogram
	DeletionStepsTotal *prometheus.CounterVec

	WSConnectionsActive prometheus.Gauge
}

var _ usecasecontract.IMetrics = (*Metrics)(nil)

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer to
// serve them through promhttp.Handler.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),
		TransitionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lifecycle_transitions_total",
				Help:      "Job lifecycle transitions by kind and outcome",
			},
			[]string{"transition", "outcome"},
		),
		BroadcastFanout: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "broadcast_recipients",
				Help:      "Recipients per admin broadcast",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		DeletionStepsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deletion_steps_total",
				Help:      "Account deletion workflow steps by outcome",
			},
			[]string{"step", "outcome"},
		),
		WSConnectionsActive: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ws_connections_active",
				Help:      "Open live feed connections",
			},
		),
	}
}

func (m *Metrics) RecordTransition(transition, outcome string) {
	m.TransitionsTotal.WithLabelValues(transition, outcome).Inc()
}

func (m *Metrics) RecordBroadcastFanout(recipients int) {
	m.BroadcastFanout.Observe(float64(recipients))
}

func (m *Metrics) RecordDeletionStep(step, outcome string) {
	m.DeletionStepsTotal.WithLabelValues(step, outcome).Inc()
}
