package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/udagram/feed-api/internal/metrics"
)

// unmatchedRoute labels requests that hit no registered route, so that
// arbitrary paths cannot blow up label cardinality.
const unmatchedRoute = "unmatched"

// MetricsMiddleware collects HTTP metrics for Prometheus.
// Requests are labelled by route template (e.g. /api/v0/feed/:id).
func MetricsMiddleware() gin.HandlerFunc {
	m := metrics.Get()

	return func(c *gin.Context) {
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = unmatchedRoute
		}

		m.HTTPActiveConnections.WithLabelValues(method, path).Inc()
		defer m.HTTPActiveConnections.WithLabelValues(method, path).Dec()

		if c.Request.ContentLength > 0 {
			m.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(c.Request.ContentLength))
		}

		startTime := time.Now()
		c.Next()

		// numeric status ("200", "500") so queries like status=~"5.." work
		statusStr := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(startTime).Seconds())

		if size := c.Writer.Size(); size > 0 {
			m.HTTPResponseSize.WithLabelValues(method, path, statusStr).Observe(float64(size))
		}
	}
}
