package metrics

import "github.com/prometheus/client_golang/prometheus"

// Feed Prometheus metrics.
var (
	FeedCandidatePoolSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "petfeed",
			Name:      "feed_candidate_pool_size",
			Help:      "Candidates returned by the bounded pool query",
			Buckets:   []float64{0, 10, 25, 50, 100, 200, 300, 400, 500},
		},
	)

	FeedStageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "petfeed",
			Name:      "feed_stage_duration_seconds",
			Help:      "Duration of feed pipeline stages in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"stage"}, // inputs / candidates / engagement / rank / enrich
	)

	FeedReportedCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petfeed",
			Name:      "feed_reported_cache_total",
			Help:      "Reported ids cache lookups",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	FeedEnrichmentFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "petfeed",
			Name:      "feed_enrichment_failures_total",
			Help:      "Page enrichment lookups that failed and were skipped",
		},
		[]string{"source"}, // "verification" / "photos"
	)
)

var feedMetricsRegistered bool

// RegisterFeedMetrics registers Prometheus feed metrics. Must be called once from main.
func RegisterFeedMetrics() {
	if feedMetricsRegistered {
		return
	}
	prometheus.MustRegister(FeedCandidatePoolSize)
	prometheus.MustRegister(FeedStageDuration)
	prometheus.MustRegister(FeedReportedCacheTotal)
	prometheus.MustRegister(FeedEnrichmentFailuresTotal)
	feedMetricsRegistered = true
}
