package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk analysis pipeline.
type Metrics struct {
	QueriesTotal      prometheus.Counter
	IncidentsIngested prometheus.Counter
	IntentExtracted   prometheus.Counter
	SOSFlagged        prometheus.Counter

	AnalyzeDuration prometheus.Histogram
	MemoryLocations prometheus.Gauge

	// Predictions by risk label: low, moderate, high.
	Predictions *prometheus.CounterVec
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightwatch",
			Name:      "queries_total",
			Help:      "Total analyze queries processed.",
		}),
		IncidentsIngested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightwatch",
			Name:      "incidents_ingested_total",
			Help:      "Total incident reports ingested.",
		}),
		IntentExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightwatch",
			Name:      "intent_extracted_total",
			Help:      "Queries where a travel intent was recognized.",
		}),
		SOSFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "nightwatch",
			Name:      "sos_flagged_total",
			Help:      "Ingested incidents flagged as SOS cases.",
		}),
		AnalyzeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nightwatch",
			Name:      "analyze_duration_seconds",
			Help:      "End-to-end duration of an analyze call.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		MemoryLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "nightwatch",
			Name:      "memory_locations",
			Help:      "Distinct locations in the time-location memory snapshot.",
		}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nightwatch",
			Name:      "predictions_total",
			Help:      "Risk predictions by label.",
		}, []string{"label"}),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.IncidentsIngested,
		m.IntentExtracted,
		m.SOSFlagged,
		m.AnalyzeDuration,
		m.MemoryLocations,
		m.Predictions,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		QueriesTotal:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nightwatch", Name: "queries_total"}),
		IncidentsIngested: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nightwatch", Name: "incidents_ingested_total"}),
		IntentExtracted:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nightwatch", Name: "intent_extracted_total"}),
		SOSFlagged:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "nightwatch", Name: "sos_flagged_total"}),
		AnalyzeDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "nightwatch", Name: "analyze_duration_seconds"}),
		MemoryLocations:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "nightwatch", Name: "memory_locations"}),
		Predictions:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "nightwatch", Name: "predictions_total"}, []string{"label"}),
	}
}
