// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for NewsOutcomesTotal.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Outbound HTTP metrics track calls made to the news search endpoint
var (
	// UpstreamRequestsTotal counts GET requests by status class ("2xx", "4xx", "error", ...)
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_upstream_requests_total",
			Help: "Total number of requests sent to the news search endpoint",
		},
		[]string{"status_class"},
	)

	// UpstreamRequestDuration measures round-trip time including body read
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsapi_upstream_request_duration_seconds",
			Help:    "Duration of requests to the news search endpoint in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status_class"},
	)

	// UpstreamResponseSize measures response body size in bytes
	UpstreamResponseSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsapi_upstream_response_size_bytes",
			Help:    "Size of news search response bodies in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
	)

	// UpstreamRateLimitWait measures time spent waiting for the client-side limiter
	UpstreamRateLimitWait = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "newsapi_upstream_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the client-side rate limiter",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		},
	)
)

// Business metrics track what the orchestrator delivers to its callers
var (
	// NewsOutcomesTotal counts decisive outcomes delivered to callers
	NewsOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_outcomes_total",
			Help: "Total number of decisive news request outcomes by result",
		},
		[]string{"outcome"},
	)

	// IndecisiveDroppedTotal counts transport callbacks that were neither success nor failure
	IndecisiveDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsapi_indecisive_dropped_total",
			Help: "Total number of indecisive responses dropped without a completion call",
		},
		[]string{"reason"},
	)

	// ReleasedDroppedTotal counts callbacks that arrived after the orchestrator was released
	ReleasedDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsapi_released_dropped_total",
			Help: "Total number of callbacks dropped because the requester was released",
		},
	)

	// ArticlesReceived tracks the article count of the last successful payload
	ArticlesReceived = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsapi_articles_received",
			Help: "Number of articles in the last successful payload",
		},
	)

	// TotalResults tracks the server-reported totalResults of the last successful payload
	TotalResults = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "newsapi_total_results",
			Help: "Server-reported totalResults of the last successful payload",
		},
	)
)
