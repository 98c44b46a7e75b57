package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// requestLogger logs every request of a route group with logrus
func requestLogger(name string) gin.HandlerFunc {
	entry := logrus.WithField("prefix", name)

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("request_id", requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"status":     status,
			"method":     c.Request.Method,
			"path":       path,
			"latency":    time.Since(start),
			"client_ip":  c.ClientIP(),
			"request_id": requestID,
		}
		if query != "" {
			fields["query"] = query
		}

		l := entry.WithFields(fields)
		if len(c.Errors) > 0 {
			l = l.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			l.Error("request completed")
		case status >= 400:
			l.Warn("request completed")
		default:
			l.Info("request completed")
		}
	}
}
