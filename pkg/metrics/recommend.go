package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handlers
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommend_latency_seconds",
		Help:    "Latency of recommendation handlers",
		Buckets: prometheus.DefBuckets,
	})

	// Recommendations served, by where the ranking came from
	RecommendRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendations served by source (personalized or popular).",
		},
		[]string{"source"},
	)

	SimilarityCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_similarity_cache_lookups_total",
			Help: "Similarity matrix cache lookups by result (hit, miss, error).",
		},
		[]string{"result"},
	)

	ReviewSubmissions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_submissions_total",
		Help: "Total reviews created or overwritten",
	})

	ReviewDeletions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "review_deletions_total",
		Help: "Total reviews withdrawn by their authors",
	})

	// 0 = closed, 1 = half-open, 2 = open
	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_state",
			Help: "Circuit breaker state of the rating store (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		SimilarityCacheLookups,
		ReviewSubmissions,
		ReviewDeletions,
		BreakerState,
	)
}
