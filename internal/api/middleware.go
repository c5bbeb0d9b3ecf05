// Package api holds HTTP middleware shared by the API handlers.
package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/toh-yonetim/dashboard/pkg/logger"
)

// RequestLogger logs one line per request. Server errors are logged at error
// level, client errors at warn level.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := log.Debug()
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}
