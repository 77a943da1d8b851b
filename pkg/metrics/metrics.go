package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metrics, registered automatically via promauto.

var (
	// HTTP traffic, labeled by method, path and status. Fed by the logging
	// middleware.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfind_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wayfind_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	// Resolver outcomes: "hit" or "miss". A rising miss rate usually means
	// the alias tables need attention.
	ResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wayfind_resolve_total",
			Help: "Destination resolution attempts by outcome",
		},
		[]string{"outcome"},
	)

	// Route computation time over the whole graph.
	RouteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wayfind_route_duration_seconds",
			Help:    "Shortest-path computation time in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
	)

	// Playback sessions currently alive.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wayfind_playback_sessions_active",
			Help: "Number of active playback sessions",
		},
	)
)
