package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestLogger attaches a request-scoped zerolog logger carrying a request
// id, and writes one structured line per request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		reqLog := log.With().Str("request_id", requestID).Logger()
		c.Set("logger", &reqLog)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		c.Next()

		event := reqLog.Info()
		if c.Writer.Status() >= 500 {
			event = reqLog.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// Logger returns the request-scoped logger, or the fallback when the request
// did not pass through RequestLogger.
func Logger(c *gin.Context, fallback zerolog.Logger) zerolog.Logger {
	if v, ok := c.Get("logger"); ok {
		if l, ok := v.(*zerolog.Logger); ok {
			return *l
		}
	}
	return fallback
}
