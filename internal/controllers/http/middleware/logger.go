package middleware

import (
	"time"

	"shop-service/internal/logging"

	"github.com/gin-gonic/gin"
)

// RequestLogger attaches a request-scoped logger under the "logger" key, the
// one logging.From reads, and logs each request on completion.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		l := logging.New("http").With("method", c.Request.Method, "path", path)
		c.Set("logger", l)

		start := time.Now()
		c.Next()

		l.Info("request completed",
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
