package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brandsuite"

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeEmpty    = "empty"
	OutcomeFallback = "fallback"
)

var (
	registry = prometheus.NewRegistry()

	indexRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "index_runs_total",
		Help:      "Manual index runs by outcome.",
	}, []string{"outcome"})
	indexedChunks = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "indexed_chunks_total",
		Help:      "Chunks written by index runs.",
	})
	searches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "searches_total",
		Help:      "Similarity searches by outcome.",
	}, []string{"outcome"})
	searchLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_duration_seconds",
		Help:      "Similarity search latency including the query embedding.",
		Buckets:   prometheus.DefBuckets,
	})
	generations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_generations_total",
		Help:      "Content generations by content type and outcome.",
	}, []string{"content_type", "outcome"})
	audits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_audits_total",
		Help:      "Image audits by outcome.",
	}, []string{"outcome"})
	auditScores = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "image_audit_score",
		Help:      "Compliance scores of parsed audits.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	})
	providerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_call_duration_seconds",
		Help:      "Latency of generation and vision calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
	}, []string{"operation"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		indexRuns, indexedChunks, searches, searchLatency,
		generations, audits, auditScores, providerLatency,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func ObserveIndex(outcome string, chunks int) {
	indexRuns.WithLabelValues(outcome).Inc()
	if chunks > 0 {
		indexedChunks.Add(float64(chunks))
	}
}

func ObserveSearch(outcome string, start time.Time) {
	searches.WithLabelValues(outcome).Inc()
	searchLatency.Observe(time.Since(start).Seconds())
}

func ObserveGeneration(contentType, outcome string) {
	generations.WithLabelValues(contentType, outcome).Inc()
}

// ObserveAudit records the audit outcome; score is only observed for parsed verdicts.
func ObserveAudit(outcome string, score float64) {
	audits.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		auditScores.Observe(score)
	}
}

func ObserveProvider(operation string, start time.Time) {
	providerLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
