package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// slowRequestThreshold flags dashboard requests that users will perceive
// as sluggish. The activity stream is exempt, it stays open for hours.
const slowRequestThreshold = 2 * time.Second

// Logger logs failed and slow requests with logrus. Healthy fast
// requests stay out of the logs so errors remain visible.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		if strings.HasSuffix(path, "/activity/stream") || strings.HasSuffix(path, "/health") {
			return
		}

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		entry := logrus.WithFields(logrus.Fields{
			"status":    status,
			"latency":   latency,
			"client_ip": c.ClientIP(),
			"method":    c.Request.Method,
			"path":      path,
		})

		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		case latency > slowRequestThreshold:
			entry.Warn("Slow request")
		}
	}
}
