package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipebox/backend/internal/logger"
)

// RequestLogger logs one line per request with its status and latency.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if c.Writer.Status() >= 500 {
			log.Warn("Request completed", fields...)
			return
		}
		log.Debug("Request completed", fields...)
	}
}
