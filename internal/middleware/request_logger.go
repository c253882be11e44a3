package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/reconciliation-service/internal/domain/model"
	"github.com/guttosm/reconciliation-service/internal/logger"
)

// RequestLogger returns a middleware that writes one access-log event per request and,
// when sink is non-nil, enqueues the request metadata for the request-log store.
// Request and response bodies are never recorded.
func RequestLogger(sink *AsyncLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		entry := &model.LogEntry{
			Timestamp:  start.UTC(),
			Kind:       model.LogKindRequest,
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: statusCode,
			DurationMS: latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}

		log := logger.Logger()
		log.WithLevel(levelFor(statusCode)).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", statusCode).
			Int64("duration_ms", entry.DurationMS).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Msg(entry.Message)

		sink.Log(entry)
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	return levelFor(statusCode).String()
}

func levelFor(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
