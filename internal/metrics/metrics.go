package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_studio_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_studio_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Import pipeline metrics
var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_studio_imports_total",
			Help: "Total number of media imports by type and storage outcome",
		},
		[]string{"type", "storage"}, // storage: "persisted" or "ephemeral"
	)

	ImportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_studio_import_duration_seconds",
			Help:    "End-to-end duration of a single media import",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ProbeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_studio_probe_duration_seconds",
			Help:    "Duration of metadata probe operations",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"kind"}, // "video_info", "audio_duration", "thumbnail", "image_info", "image_preview"
	)

	ProbeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_studio_probe_failures_total",
			Help: "Total number of probe operations that resolved to a sentinel value",
		},
		[]string{"kind"},
	)
)

// Storage metrics
var (
	StoreQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_studio_store_queries_total",
			Help: "Total number of storage operations",
		},
		[]string{"operation", "status"},
	)

	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_studio_store_query_duration_seconds",
			Help:    "Storage operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	BlobWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_studio_blob_write_failures_total",
			Help: "Total number of blob writes that failed and triggered the ephemeral fallback",
		},
	)
)

// Resolver metrics
var (
	ResolverCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_studio_resolver_cache_hits_total",
			Help: "Total number of reference resolutions served from the cache",
		},
	)

	ResolverCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_studio_resolver_cache_misses_total",
			Help: "Total number of reference resolutions that fetched from the store",
		},
	)

	ResolverDeadRefs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_studio_resolver_dead_refs_total",
			Help: "Total number of resolutions for ids absent from the store",
		},
	)
)

// Project store metrics
var (
	ProjectOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_studio_project_ops_total",
			Help: "Total number of project store operations",
		},
		[]string{"operation", "status"},
	)
)
