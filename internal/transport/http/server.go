package http

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/nlweb-api/internal/config"
	"github.com/vovakirdan/nlweb-api/internal/core"
)

const rateLimitWindow = time.Minute

// NewServer builds the HTTP server with the API routes.
// Background work owned by the server (rate limit resets) stops when ctx is done.
func NewServer(ctx context.Context, cfg config.Config, responder *core.Responder, logger *zerolog.Logger) *stdhttp.Server {
	return &stdhttp.Server{
		Addr:              cfg.Addr(),
		Handler:           NewRouter(ctx, cfg, responder, logger),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

// NewRouter wires middleware and routes onto a gin engine.
func NewRouter(ctx context.Context, cfg config.Config, responder *core.Responder, logger *zerolog.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn().Err(err).Strs("trusted_proxies", cfg.TrustedProxies).Msg("ignoring invalid trusted proxies")
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(
		RequestIDMiddleware(),
		LoggerMiddleware(logger),
		CORSMiddleware(),
		RecoveryMiddleware(logger),
	)

	limiter := newRateLimiter(cfg.RateLimitPerMinute, rateLimitWindow)
	limiter.startCleanup(ctx.Done())

	chat := NewChatHandlers(responder, cfg.ResponseDelay, logger)

	api := router.Group("/api")
	api.GET("/health", chat.Health)
	api.POST("/chat", RateLimitMiddleware(limiter, logger), chat.Chat)

	return router
}
