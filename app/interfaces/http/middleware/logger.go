package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func LoggerMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := uuid.New().String()
		c.Writer.Header().Set("X-Request-ID", requestID)

		c.Next()

		duration := time.Since(start)
		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"host":       c.Request.Host,
			"path":       c.Request.URL.Path,
			"query":      c.Request.URL.RawQuery,
			"latency":    duration.String(),
			"client_ip":  c.ClientIP(),
		}).Info("")
	}
}
