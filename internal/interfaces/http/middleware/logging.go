package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/payrelay/internal/shared/logger"
	"github.com/orris-inc/payrelay/internal/shared/utils/logutil"
)

// RequestLogger logs one line per request. Credential headers such as
// crm-pay-token are redacted.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)

		args := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}

		if c.Request.URL.RawQuery != "" {
			args = append(args, "query", c.Request.URL.RawQuery)
		}

		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", append(args, "headers", logutil.SanitizeHeaders(c.Request.Header))...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", append(args, "headers", logutil.SanitizeHeaders(c.Request.Header))...)
		default:
			log.Infow("HTTP request completed", args...)
		}
	}
}
