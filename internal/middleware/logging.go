package middleware

import (
	"time" // Latency measurement

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// AccessLog writes one structured log line per request
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now() // Request start
		c.Next()            // Run the rest of the chain

		status := c.Writer.Status() // Final response status
		entry := logrus.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
			"request_id": c.GetString(CtxRequestID),
		})
		// Level follows the status class
		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
