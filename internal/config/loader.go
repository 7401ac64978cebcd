package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	envPrefix            = "NLWEB"
	envConfigDefaultPath = "NLWEB_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load builds configuration from defaults, optional config file, env vars, and returns the resolved path.
// Precedence: defaults < config file < env vars < caller overrides.
// A missing config file is only an error when explicitPath is set.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("port", cfg.Port)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("read_header_timeout", cfg.ReadHeaderTimeout)
	v.SetDefault("shutdown_timeout", cfg.ShutdownTimeout)
	v.SetDefault("response_delay", cfg.ResponseDelay)
	v.SetDefault("rate_limit_per_minute", cfg.RateLimitPerMinute)
	v.SetDefault("trusted_proxies", []string{})

	// Keys are bound explicitly; AutomaticEnv would let NLWEB_PORT shadow PORT.
	// For port the unprefixed PORT is checked first.
	for key, envs := range envBindings() {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return cfg, "", fmt.Errorf("bind %s env: %w", key, err)
		}
	}

	configPath := resolveConfigPath(explicitPath)
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if !missing || explicitPath != "" {
			return cfg, configPath, fmt.Errorf("read config: %w", err)
		}
		if logger != nil {
			logger.Debug().Str("path", configPath).Msg("no config file, using defaults and environment")
		}
		configPath = ""
	} else if logger != nil {
		logger.Info().Str("path", configPath).Msg("loaded config file")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, configPath, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, configPath, nil
}

func envBindings() map[string][]string {
	keys := []string{"log_level", "read_header_timeout", "shutdown_timeout", "response_delay", "rate_limit_per_minute", "trusted_proxies"}
	bindings := map[string][]string{
		"port": {"PORT", envPrefix + "_PORT"},
	}
	for _, key := range keys {
		bindings[key] = []string{envPrefix + "_" + strings.ToUpper(key)}
	}
	return bindings
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		return filepath.Join(base, defaultConfigName)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}
