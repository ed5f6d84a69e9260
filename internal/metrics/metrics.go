// Package metrics holds the service's prometheus collectors, registered
// on the default registry and exposed via /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "recsvc"

var (
	// RecommendationRequests counts top-level recommendation calls by outcome.
	RecommendationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recommendation_requests_total",
		Help:      "Recommendation requests by outcome.",
	}, []string{"outcome"})

	// TrendingRequests counts trending calls by outcome.
	TrendingRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "trending_requests_total",
		Help:      "Trending requests by outcome.",
	}, []string{"outcome"})

	// StrategyFailures counts scorer errors swallowed by the blender.
	StrategyFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "strategy_failures_total",
		Help:      "Scoring strategy failures absorbed by the blender.",
	}, []string{"strategy"})

	// CacheRequests counts cache lookups by result (hit or miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_requests_total",
		Help:      "Result cache lookups by result.",
	}, []string{"result"})
)
