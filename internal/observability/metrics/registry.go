// Package metrics provides centralized Prometheus metrics for the
// dashboard backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track inbound request patterns and performance.
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Upstream metrics track every outbound call to a data source.
var (
	// UpstreamRequestsTotal counts upstream calls by source and outcome.
	// Sources: feed, article, quote, weather.
	// Outcomes: success, fetch_error, parse_error, extract_error.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream calls by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	// UpstreamRequestDuration measures upstream call latency per source.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// QuoteSymbolsSkipped counts ticker symbols dropped from a batch
	// because their resolution failed.
	QuoteSymbolsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quote_symbols_skipped_total",
			Help: "Ticker symbols silently dropped after a failed resolution",
		},
	)
)
