package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unicourse/planner-api/internal/service"
)

const scrapePath = "/metrics"

// Metrics records duration and count per request. The scrape endpoint is
// excluded so the exporter never counts its own traffic.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if path == scrapePath {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
