package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hjemme/inventar/pkg/metrics"
)

// PrometheusMiddleware records the request counter and duration histogram.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		metrics.RequestCounter.WithLabelValues(method, path).Inc()

		duration := time.Since(start).Seconds()
		metrics.RequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}
