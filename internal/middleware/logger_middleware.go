package middleware

import (
	"time"

	"github.com/examdesk/examdesk/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs every request with method, path, status and latency.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}
