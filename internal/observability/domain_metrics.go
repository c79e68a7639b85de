package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	questionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopql_questions_total",
			Help: "Total number of natural-language questions answered, by front end.",
		},
		[]string{"surface"},
	)
	generationFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopql_generation_failures_total",
			Help: "Total number of failed SQL generation calls.",
		},
	)
	executionFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopql_execution_failures_total",
			Help: "Total number of generated statements rejected by the store.",
		},
	)
	synthesisDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopql_synthesis_duration_seconds",
			Help:    "Latency of SQL synthesis calls.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40},
		},
	)
	executionDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopql_execution_duration_seconds",
			Help:    "Latency of statement execution against the store.",
			Buckets: prometheus.DefBuckets,
		},
	)
	chartsRenderedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopql_charts_rendered_total",
			Help: "Total number of charts produced by the presenter, by kind.",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		questionsTotal,
		generationFailuresTotal,
		executionFailuresTotal,
		synthesisDurationSeconds,
		executionDurationSeconds,
		chartsRenderedTotal,
	)
}

func ObserveQuestion(surface string) {
	questionsTotal.WithLabelValues(surface).Inc()
}

func ObserveSynthesis(elapsed time.Duration, failed bool) {
	synthesisDurationSeconds.Observe(elapsed.Seconds())
	if failed {
		generationFailuresTotal.Inc()
	}
}

func ObserveExecution(elapsed time.Duration, failed bool) {
	executionDurationSeconds.Observe(elapsed.Seconds())
	if failed {
		executionFailuresTotal.Inc()
	}
}

func ObserveChart(kind string) {
	chartsRenderedTotal.WithLabelValues(kind).Inc()
}
