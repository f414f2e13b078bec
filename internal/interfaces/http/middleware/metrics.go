package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"skill-registry.backend/pkg/metrics"
)

// MetricsMiddleware records request count and latency per matched route.
// Unmatched paths are grouped under "unmatched" to keep label cardinality bounded.
func MetricsMiddleware(m *metrics.RegistryMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
