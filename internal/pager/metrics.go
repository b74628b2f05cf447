package pager

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for every pagination request
const (
	outcomeFetched   = "fetched"   // page replaced
	outcomeFailed    = "failed"    // fetch failed, prior page kept
	outcomeRejected  = "rejected"  // boundary, busy or closed
	outcomeDiscarded = "discarded" // completion arrived for a closed mount or stale request
)

// pageRequests tracks pagination requests by collection, direction and outcome
var pageRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_page_requests_total",
		Help: "Pagination requests by collection, direction and outcome",
	},
	[]string{"collection", "direction", "outcome"},
)
