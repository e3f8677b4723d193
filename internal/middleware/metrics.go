package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/classdeck/classdeck-api/internal/service"
)

// Metrics records per-route request counts and latencies. The route
// template is used when available so path parameters don't explode the
// label set.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
