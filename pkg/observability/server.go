package observability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the metrics, health and readiness endpoints
func RegisterRoutes(router gin.IRoutes, healthChecker *HealthChecker) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if healthChecker != nil {
		router.GET("/health", healthChecker.HealthHandler())
	}

	router.GET("/ready", func(c *gin.Context) {
		c.String(http.StatusOK, "ready")
	})
}

// GinMiddleware records per-route request counts and in-flight requests
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := TrackInFlight()
		defer done()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		RecordHTTPRequest(route, c.Writer.Status())
	}
}

