package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pfjetdev/pfgrouptravel/internal/services"
	"github.com/pfjetdev/pfgrouptravel/internal/utils"
	"github.com/sirupsen/logrus"
)

// RequestIDKey is the Gin context key holding the request id
const RequestIDKey = "request_id"

// RequestIDHeader is echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an id, reusing a well-formed incoming one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger logs each request once it has completed
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		device := utils.ParseUserAgent(c.Request.UserAgent())
		fields := logrus.Fields{
			"status":      c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        path,
			"query":       query,
			"ip":          utils.GetRealIP(c),
			"latency_ms":  time.Since(start).Milliseconds(),
			"request_id":  GetRequestID(c),
			"device_type": device.DeviceType,
			"browser":     device.Browser,
			"os":          device.OS,
			"is_bot":      device.IsBot,
		}
		if op, ok := GetOperatorContext(c); ok {
			fields["operator"] = op.Email
		}

		entry := logger.WithFields(fields)
		if len(c.Errors) > 0 {
			for i, err := range c.Errors {
				entry = entry.WithField(fmt.Sprintf("error_%d", i), err.Error())
			}
			entry.Error("Request failed with errors")
			return
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed successfully")
		}
	}
}

// Limiter is the part of the rate limit service the middleware needs
type Limiter interface {
	Allow(ctx context.Context, identifier string) error
}

// SubmissionRateLimit rejects clients that exceeded their submission budget
func SubmissionRateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := limiter.Allow(c.Request.Context(), utils.GetRealIP(c))
		if err == nil {
			c.Next()
			return
		}

		var rlErr *services.RateLimitError
		if errors.As(err, &rlErr) {
			c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": rlErr.Message,
				"code":  "rate_limited",
			})
			return
		}

		// Allow fails open on store errors, so anything else is unexpected
		c.Error(err)
		c.Next()
	}
}
