package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeoCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "geo_cache_lookups_total",
		Help:      "Bounding-box cache lookups by outcome (hit = enough fresh records to skip the upstream search)",
	}, []string{"outcome"})

	QueryCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "query_cache_lookups_total",
		Help:      "Redis nearby-response cache lookups by outcome",
	}, []string{"outcome"})

	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "upstream_requests_total",
		Help:      "Requests issued to the place-data provider",
	}, []string{"endpoint", "status"})

	PhotoTimeouts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "photo_timeouts_total",
		Help:      "Photo fetches abandoned after exceeding their time budget",
	})

	PhotoFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "photo_failures_total",
		Help:      "Photo fetches dropped after exhausting retries",
	})

	CacheWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "hihungry",
		Name:      "cache_write_failures_total",
		Help:      "Place/photo upserts that failed (non-fatal)",
	})

	EnrichmentDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "hihungry",
		Name:      "enrichment_duration_seconds",
		Help:      "Wall time of the per-request enrichment pipeline",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)
