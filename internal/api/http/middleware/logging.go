package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmanager/vehicle-manager-server/internal/logger"
)

// RequestLog logs HTTP requests and results, tagging each with a request
// id that is also echoed in the X-Request-ID response header.
type RequestLog struct {
	logger *logger.Logger
}

// NewRequestLog creates a new RequestLog middleware.
func NewRequestLog(logger *logger.Logger) *RequestLog {
	return &RequestLog{logger: logger}
}

// Handle logs method, path, status and duration for each request.
func (l *RequestLog) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", requestID)

		l.logger.Info("HTTP request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		l.logger.Info("HTTP request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", duration.Milliseconds())

		if len(c.Errors) > 0 {
			l.logger.Error("HTTP request failed",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", c.Errors.String())
		}
	}
}
