package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var skipLogPaths = map[string]bool{
	"/":       true,
	"/health": true,
}

// Logger writes one access log line per request. Health probes are skipped.
func Logger(log *zap.Logger, enabled bool) gin.HandlerFunc {
	log = log.Named("HTTP")
	return func(c *gin.Context) {
		if !enabled || skipLogPaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", c.ClientIP()),
			zap.String("requestId", GetRequestID(c)),
		}
		if p, ok := CurrentPrincipal(c); ok {
			fields = append(fields, zap.Uint("userId", p.ID), zap.String("role", p.Role))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500:
			log.Error("request failed", fields...)
		case status >= 400:
			log.Warn("request rejected", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
