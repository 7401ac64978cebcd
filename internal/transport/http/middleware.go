package http

import (
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/nlweb-api/internal/proto"
	"github.com/vovakirdan/nlweb-api/internal/utils"
)

const (
	// ContextKeyRequestID is the context key for storing the request ID.
	ContextKeyRequestID = "request_id"
	// HeaderRequestID carries the request ID in both directions.
	HeaderRequestID = "X-Request-ID"
)

// CORS header values applied to every response.
const (
	CORSAllowOrigin  = "*"
	CORSAllowMethods = "GET, POST, OPTIONS"
	CORSAllowHeaders = "Content-Type"
)

// CORSMiddleware sets the permissive cross-origin headers on every response.
// Preflight (OPTIONS) requests are answered here with an empty 200 and never reach a handler,
// so no OPTIONS route needs to be registered.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", CORSAllowOrigin)
		header.Set("Access-Control-Allow-Methods", CORSAllowMethods)
		header.Set("Access-Control-Allow-Headers", CORSAllowHeaders)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// RequestIDMiddleware assigns every request an ID, reusing a well-formed inbound X-Request-ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if !utils.ValidID(id) {
			id = utils.NewID()
		}
		c.Set(ContextKeyRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// LoggerMiddleware creates a middleware that logs HTTP requests.
func LoggerMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Log after request
		logger.Info().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("client_ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("http request")
	}
}

// RecoveryMiddleware turns handler panics into the generic internal error.
func RecoveryMiddleware(logger *zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Interface("panic", recovered).
			Bytes("stack", debug.Stack()).
			Msg("panic while handling request")
		c.AbortWithStatusJSON(http.StatusInternalServerError, proto.ErrorResponse{Error: proto.ErrMsgInternal})
	})
}

// RateLimitMiddleware rejects clients that exceed the per-window request budget.
func RateLimitMiddleware(limiter *rateLimiter, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.allow(c.ClientIP()) {
			c.Next()
			return
		}
		logger.Warn().
			Str("request_id", c.GetString(ContextKeyRequestID)).
			Str("client_ip", c.ClientIP()).
			Msg("rate limit exceeded")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, proto.ErrorResponse{Error: proto.ErrMsgTooManyRequests})
	}
}
