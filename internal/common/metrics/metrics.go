// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DecisionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decision_requests_total",
			Help: "Total number of decision requests by outcome",
		},
		[]string{"outcome"},
	)

	DecisionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "decision_duration_seconds",
			Help: "Duration of full decision runs in seconds",
		},
	)

	MarketsRanked = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "markets_ranked_per_request",
			Help:    "Number of candidate mandis ranked per selection pass",
			Buckets: prometheus.LinearBuckets(0, 5, 10),
		},
	)

	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_errors_total",
			Help: "Total number of provider lookup failures",
		},
		[]string{"provider"},
	)
)
