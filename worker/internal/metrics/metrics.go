package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Delivery metrics
	DeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrubline_worker_deliveries_total",
			Help: "Total number of push deliveries by outcome",
		},
		[]string{"outcome"},
	)

	ProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "scrubline_worker_processing_duration_seconds",
			Help:    "Time spent redacting and persisting a record",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		},
	)

	// Storage metrics
	StorageWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scrubline_worker_storage_writes_total",
			Help: "Total number of document store writes by result",
		},
		[]string{"result"},
	)
)
