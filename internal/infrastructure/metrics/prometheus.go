// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tubepulse"

var (
	// CacheOperationsTotal tracks bundle cache operations.
	// Labels:
	//   - operation: get, set
	//   - status: hit, miss, expired, success, error
	//   - cache_type: memory, redis
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of bundle cache operations",
		},
		[]string{"operation", "status", "cache_type"},
	)

	// UpstreamRequestsTotal tracks calls to the metadata provider.
	// Labels:
	//   - endpoint: channels, playlistItems, videos
	//   - status: ok, error
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of upstream provider requests",
		},
		[]string{"endpoint", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// AnalysisDuration observes end-to-end analysis latency.
	// Labels:
	//   - outcome: ok, error
	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duration of multi-channel analysis requests",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusExpired = "expired"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet = "get"
	CacheOpSet = "set"
)

// Cache type constants.
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// Upstream endpoint constants.
const (
	EndpointChannels      = "channels"
	EndpointPlaylistItems = "playlistItems"
	EndpointVideos        = "videos"
)

// Upstream status constants.
const (
	UpstreamStatusOK    = "ok"
	UpstreamStatusError = "error"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Analysis outcome constants.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
