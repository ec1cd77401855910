// Package metrics exposes Prometheus collectors for news fetching, briefing and
// board hand-off.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "boardroom"

var (
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_fetch_total",
			Help:      "News provider searches by outcome",
		},
		[]string{"provider", "status"},
	)

	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_fetch_duration_seconds",
			Help:      "Duration of a provider search across all of its queries",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ArticlesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_articles_returned",
			Help:      "Articles returned per search after dedup and relevance filtering",
			Buckets:   []float64{0, 1, 5, 10, 15, 20, 50},
		},
	)

	LLMCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "Brief completions by model and outcome",
		},
		[]string{"model", "status"},
	)

	PlaceholdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brief_placeholders_total",
			Help:      "Brief items synthesized because the model did not return them",
		},
	)

	BriefCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "brief_cache_hits_total",
			Help:      "Briefs served from the in-memory cache",
		},
	)

	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "board_snapshots_total",
			Help:      "Board snapshot operations by outcome",
		},
		[]string{"operation", "status"},
	)
)

// RecordProviderFetch records one provider search.
func RecordProviderFetch(provider, status string, seconds float64) {
	ProviderFetchTotal.WithLabelValues(provider, status).Inc()
	ProviderFetchDuration.WithLabelValues(provider).Observe(seconds)
}

// RecordLLMCall records one completion attempt.
func RecordLLMCall(model, status string) {
	LLMCallsTotal.WithLabelValues(model, status).Inc()
}

// RecordPlaceholders adds n synthesized brief items.
func RecordPlaceholders(n int) {
	if n > 0 {
		PlaceholdersTotal.Add(float64(n))
	}
}

// RecordSnapshot records a board snapshot put or take.
func RecordSnapshot(operation, status string) {
	SnapshotsTotal.WithLabelValues(operation, status).Inc()
}
