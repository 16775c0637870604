package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Upstream USAspending calls made by the proxy
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "usaspending_upstream_requests_total",
			Help: "Total number of requests forwarded to the USAspending API",
		},
		[]string{"endpoint", "outcome"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "usaspending_upstream_request_duration_seconds",
			Help:    "Duration of forwarded USAspending requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Client side
	CountFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "award_count_fallbacks_total",
			Help: "Number of award count lookups that failed and were reported as zero",
		},
	)

	StaleCyclesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "award_search_stale_cycles_total",
			Help: "Number of fetch cycles discarded because a newer one was issued",
		},
	)
)
