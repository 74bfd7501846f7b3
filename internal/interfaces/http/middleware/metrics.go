package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"fingerpay.backend/pkg/metrics"
)

// MetricsMiddleware records request duration per method/route/status.
// Unmatched routes are collapsed into a single label to keep cardinality down.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
