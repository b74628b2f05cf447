package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// requestsTotal tracks collection requests by collection and HTTP status
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_requests_total",
			Help: "Total number of collection endpoint requests",
		},
		[]string{"collection", "status"}, // status: HTTP code or "network"
	)

	// requestDuration tracks request latency by collection
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_catalog_request_duration_seconds",
			Help:    "Collection endpoint request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"collection"},
	)
)
