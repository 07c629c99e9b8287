package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a pipeline run.
type Metrics struct {
	RegionsProcessed prometheus.Counter
	RegionsSkipped   prometheus.Counter
	VariablesReduced prometheus.Counter
	// VariablesSkipped counts recoverable per-variable skips by reason:
	// reason={empty_clip,clip_error,load_error}.
	VariablesSkipped *prometheus.CounterVec
	RowsWritten      prometheus.Counter
	RunDuration      prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RegionsProcessed,
		m.RegionsSkipped,
		m.VariablesReduced,
		m.VariablesSkipped,
		m.RowsWritten,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RegionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymet_etl",
			Name:      "regions_processed_total",
			Help:      "Regions for which an output table was written.",
		}),
		RegionsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymet_etl",
			Name:      "regions_skipped_total",
			Help:      "Regions that yielded no data and hence no output file.",
		}),
		VariablesReduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymet_etl",
			Name:      "variables_reduced_total",
			Help:      "Variable series successfully clipped and reduced.",
		}),
		VariablesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "daymet_etl",
			Name:      "variables_skipped_total",
			Help:      "Recoverable per-variable skips by reason.",
		}, []string{"reason"}),
		RowsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "daymet_etl",
			Name:      "rows_written_total",
			Help:      "Total table rows written across all regions.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "daymet_etl",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of a complete pipeline run.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600, 14400},
		}),
	}
}
