// Package metrics provides Prometheus instrumentation for the HTTP surface
// and the content store bridge.
package metrics

import (
	"net/http"
	_ "net/http/pprof" // registers pprof endpoints on the default mux

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hjemme/inventar/pkg/configs"
)

var (
	// RequestCounter counts HTTP requests by method and path.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	// RequestDuration observes HTTP request latency.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// BlobOperations counts content bridge operations by kind and outcome.
	BlobOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blob_operations_total",
			Help: "Total number of object store bridge operations",
		},
		[]string{"store", "operation", "outcome"},
	)

	// BlobBytes observes blob payload sizes on insert and read.
	BlobBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blob_bytes",
			Help:    "Blob payload size in bytes",
			Buckets: prometheus.ExponentialBuckets(256, 4, 10),
		},
		[]string{"store", "operation"},
	)

	registry = prometheus.NewRegistry()
)

// InitMetrics registers collectors on the private registry.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	if config.RuntimeMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	registry.MustRegister(RequestCounter, RequestDuration, BlobOperations, BlobBytes)

	return nil
}

// RegisterMetricsRoute exposes the registry on GET /metrics of the given
// engine, plus pprof when enabled.
func RegisterMetricsRoute(config configs.MetricsConfig, engine *gin.Engine) {
	if !config.Enabled {
		// The route stays up but renders an empty exposition.
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})))

		return
	}

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}
}

// GetRegistry returns the Prometheus registry.
func GetRegistry() *prometheus.Registry {
	return registry
}
