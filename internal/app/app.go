package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/nlweb-api/internal/config"
	"github.com/vovakirdan/nlweb-api/internal/core"
	transporthttp "github.com/vovakirdan/nlweb-api/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	cfg             config.Config
	responder       *core.Responder
	shutdownTimeout time.Duration
	log             *zerolog.Logger

	// ready receives the bound listener address once the server accepts connections.
	ready chan net.Addr
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	return &App{
		cfg:             cfg,
		responder:       core.NewResponder(),
		shutdownTimeout: cfg.ShutdownTimeout,
		log:             logger,
		ready:           make(chan net.Addr, 1),
	}
}

// Ready delivers the bound address after Run starts listening.
func (a *App) Ready() <-chan net.Addr {
	return a.ready
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	server := transporthttp.NewServer(serverCtx, a.cfg, a.responder, a.log)

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", server.Addr, err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	a.log.Info().Int("port", port).Msg("nlweb api server started")
	a.log.Info().Msgf("Health check: http://localhost:%d/api/health", port)
	a.log.Info().Msgf("Chat endpoint: http://localhost:%d/api/chat", port)
	a.ready <- ln.Addr()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancelShutdown()

		a.log.Info().Msg("shutting down http server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return <-serverErr
	}
}
