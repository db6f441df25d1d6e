// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_queries_total",
			Help: "Total number of matching queries processed",
		},
		[]string{"preset"},
	)

	MatchQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "match_query_duration_seconds",
			Help: "Duration of a full catalog scoring pass in seconds",
		},
		[]string{"preset"},
	)

	ProgramsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "programs_scored_total",
			Help: "Total number of program rows scored",
		},
	)

	ScoringFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scoring_fallbacks_total",
			Help: "Total number of per-program scoring failures recovered with a fallback result",
		},
	)

	ExtractionRowsParsed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_rows_parsed_total",
			Help: "Total requirement rows successfully parsed by the offline extractor",
		},
	)

	ExtractionRowsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "extraction_rows_failed_total",
			Help: "Total requirement rows skipped due to extraction failures",
		},
	)

	EmbeddingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_cache_hits_total",
			Help: "Embedding vectors served from the Redis cache",
		},
	)

	EmbeddingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "embedding_cache_misses_total",
			Help: "Embedding vectors computed by the provider on cache miss",
		},
	)
)
