package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	Mutations     *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		Mutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "refdata_mutations_total",
			Help: "Total number of reference data mutations by entity kind and operation",
		}, []string{"kind", "op"}),
		QueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "refdata_query_duration_seconds",
			Help:    "Duration of reference data list queries by entity kind",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
	}
}

// RecordMutation counts one mutation for the given entity kind and operation.
func (m *Metrics) RecordMutation(kind, op string) {
	m.Mutations.WithLabelValues(kind, op).Inc()
}

// ObserveQuery records the duration of one list query for the given kind.
func (m *Metrics) ObserveQuery(kind string, d time.Duration) {
	m.QueryDuration.WithLabelValues(kind).Observe(d.Seconds())
}
