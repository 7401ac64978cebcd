package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/nlweb-api/internal/config"
	"github.com/vovakirdan/nlweb-api/internal/proto"
)

func TestRunServesAndShutsDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Port = 0
	cfg.ShutdownTimeout = 2 * time.Second
	logger := zerolog.Nop()
	application := New(cfg, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- application.Run(ctx)
	}()

	var port int
	select {
	case addr := <-application.Ready():
		port = addr.(*net.TCPAddr).Port
	case err := <-done:
		t.Fatalf("server exited early: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/api/health", port))
	require.NoError(t, err)
	var health proto.HealthStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, proto.Healthy(), health)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRunFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.Default()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	logger := zerolog.Nop()

	err = New(cfg, &logger).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
