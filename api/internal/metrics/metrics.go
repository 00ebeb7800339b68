package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingest metrics
	IngestRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrubline_api_ingest_requests_total",
			Help: "Total number of ingest submissions by kind and result",
		},
		[]string{"kind", "status"},
	)

	IngestBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrubline_api_ingest_bytes_total",
			Help: "Total bytes of submitted log payloads",
		},
	)

	// Publish metrics
	PublishInitiatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrubline_api_publish_initiated_total",
			Help: "Total number of publishes handed to the broker",
		},
	)

	PublishFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scrubline_api_publish_failures_total",
			Help: "Total number of publishes the broker eventually rejected",
		},
	)

	// Rate limiting metrics
	RateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrubline_api_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
		[]string{"tenant"},
	)
)
