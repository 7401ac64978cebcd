package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate points the default config lookup at an empty temp dir and clears env overrides.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(envConfigDefaultPath, dir)
	for _, key := range []string{"PORT", "NLWEB_PORT", "NLWEB_LOG_LEVEL", "NLWEB_RESPONSE_DELAY", "NLWEB_RATE_LIMIT_PER_MINUTE", "NLWEB_TRUSTED_PROXIES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	logger := zerolog.Nop()

	cfg, path, err := Load(&logger, "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, time.Second, cfg.ResponseDelay)
	assert.Equal(t, 0, cfg.RateLimitPerMinute)
}

func TestLoadPortFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9090")

	cfg, _, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
}

func TestLoadPortPrefersUnprefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NLWEB_PORT", "7070")

	cfg, _, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)

	t.Setenv("PORT", "9191")
	cfg, _, err = Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
}

func TestLoadPortEnvWhenBothSet(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "9191")
	t.Setenv("NLWEB_PORT", "7070")

	cfg, _, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port)
}

func TestLoadTrustedProxiesFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NLWEB_TRUSTED_PROXIES", "10.0.0.1,10.0.0.2")

	cfg, _, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
}

func TestLoadInvalidPort(t *testing.T) {
	isolate(t)

	t.Setenv("PORT", "not-a-port")
	_, _, err := Load(nil, "")
	require.Error(t, err)

	t.Setenv("PORT", "70000")
	_, _, err = Load(nil, "")
	require.Error(t, err)
}

func TestLoadPrefixedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("NLWEB_RESPONSE_DELAY", "250ms")
	t.Setenv("NLWEB_RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("NLWEB_LOG_LEVEL", "debug")

	cfg, _, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.ResponseDelay)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, defaultConfigName)
	content := "port: 9000\nresponse_delay: 2s\nrate_limit_per_minute: 5\ntrusted_proxies:\n  - 10.0.0.1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, resolved, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.ResponseDelay)
	assert.Equal(t, []string{"10.0.0.1"}, cfg.TrustedProxies)

	t.Setenv("PORT", "9001")
	cfg, _, err = Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, _, err := Load(nil, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestUpdateFrom(t *testing.T) {
	cfg := Default()
	cfg.UpdateFrom(Config{Port: 3000, LogLevel: "warn"})

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.ResponseDelay)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ResponseDelay = -time.Second
	cfg.ShutdownTimeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "response_delay")
	assert.Contains(t, err.Error(), "shutdown_timeout")
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	dir := isolate(t)
	cfg := Default()
	cfg.Port = 8181
	cfg.ResponseDelay = 1500 * time.Millisecond

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "response_delay: 1.5s")

	path := filepath.Join(dir, "dump.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	loaded, _, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Port, loaded.Port)
	assert.Equal(t, cfg.ResponseDelay, loaded.ResponseDelay)
}
