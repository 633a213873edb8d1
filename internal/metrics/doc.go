// Package metrics defines the Prometheus metrics exported by the media
// studio server. Metrics are registered at package load via promauto and
// exposed through the /metrics endpoint.
package metrics
