package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const slowRequest = 200 * time.Millisecond

// RequestLogger logs every request with its latency and flags slow ones
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		switch {
		case latency > slowRequest:
			log.Warn("slow request", attrs...)
		case c.Writer.Status() >= 500:
			log.Error("request", attrs...)
		default:
			log.Info("request", attrs...)
		}
	}
}
