package api

import (
	"crypto/subtle"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyfare/ticketapi/internal/ratelimit"
)

const requestIDKey = "request_id"

// RequestIDHeader carries the correlation id on every response.
const RequestIDHeader = "X-Request-ID"

// APIKeyHeader carries the shared secret on protected routes.
const APIKeyHeader = "X-API-Key"

// RequestID tags each request with a fresh correlation id, attached to
// the request context and the response headers.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// RequestIDFromContext returns the correlation id assigned by RequestID,
// or an empty string when the middleware did not run.
func RequestIDFromContext(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// RequestLogger logs method, path, status and latency for each request.
func RequestLogger(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Printf(
			"request method=%s path=%s status=%d duration=%s request_id=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start),
			RequestIDFromContext(c),
		)
	}
}

// RateLimit rejects requests once the caller's address exceeds the
// limiter's ceiling for the trailing window.
func RateLimit(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			writeError(c, http.StatusTooManyRequests, codeRateLimitExceeded, "rate limit exceeded")
			c.Abort()
			return
		}
		c.Next()
	}
}

// APIKeyAuth requires the X-API-Key header to equal the configured
// secret on every route it wraps.
func APIKeyAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
			writeError(c, http.StatusUnauthorized, codeUnauthorized, "missing or invalid API key")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Recover catches panics escaping a handler, logs them with the stack,
// and answers with a generic internal error.
func Recover(logger *log.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = log.Default()
	}
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Printf("PANIC request_id=%s %v\n%s", RequestIDFromContext(c), rec, debug.Stack())
				writeError(c, http.StatusInternalServerError, codeInternalError, "internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
