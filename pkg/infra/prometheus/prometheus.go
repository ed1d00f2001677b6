package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds. Phase one is lexicon-bound and
	// fast; phase two waits on an LLM round trip, hence the long tail.
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000,
	}

	RequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesisgate_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	RequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thesisgate_latency_ms",
			Help:    "Request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"path"},
	)

	ModerationDecisionTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesisgate_moderation_decisions_total",
			Help: "Moderation verdicts by decision and top signal",
		},
		[]string{"decision", "top_signal"},
	)

	ModerationPhaseLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thesisgate_phase_latency_ms",
			Help:    "Pipeline phase latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"phase"}, // "moderation" or "analysis"
	)

	AnalysisGradeTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesisgate_analysis_grades_total",
			Help: "Quality reports by letter grade",
		},
		[]string{"grade"},
	)

	RefinementFallbackTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "thesisgate_refinement_fallbacks_total",
			Help: "LLM refinement calls that fell back to local scores",
		},
		[]string{"stage"}, // "timeout", "failure" or "malformed"
	)

	ProducerLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "thesisgate_producer_latency_ms",
			Help:    "Signal producer latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"producer"},
	)
)

type MetricsConfig struct {
	EnableLatency         bool // Basic latency metrics
	EnableProducerLatency bool // Per-producer latency (higher cardinality)
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:         true,
		EnableProducerLatency: false,
	}
}

var Config MetricsConfig

// Handler serves the private registry. The metrics endpoint runs on its
// own listener, so this is the only place the registry leaves the package.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}
