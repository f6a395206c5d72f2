package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ImportOutcomeSuccess = "success"
	ImportOutcomeInvalid = "invalid"
	ImportOutcomeFailed  = "failed"
)

// ImportMetrics records bulk CSV import activity.
type ImportMetrics struct {
	rows     prometheus.Counter
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewImportMetrics registers the import metrics on the provided registerer.
func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	if reg == nil {
		return &ImportMetrics{}
	}
	rows := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "inventory_import_rows_total",
		Help: "Inventory rows persisted by bulk imports.",
	})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_imports_total",
		Help: "Bulk imports by outcome.",
	}, []string{"outcome"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "inventory_import_duration_seconds",
		Help:    "Duration of bulk imports in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(rows, outcomes, duration)
	return &ImportMetrics{
		rows:     rows,
		outcomes: outcomes,
		duration: duration,
	}
}

// Record stores the result of one import run. Rows persisted before a
// failure are still counted.
func (m *ImportMetrics) Record(outcome string, imported int, elapsed time.Duration) {
	if m == nil || m.outcomes == nil {
		return
	}
	if imported > 0 {
		m.rows.Add(float64(imported))
	}
	m.outcomes.WithLabelValues(normalizeLabel(outcome)).Inc()
	m.duration.Observe(elapsed.Seconds())
}
