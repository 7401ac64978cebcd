package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds server configuration values.
type Config struct {
	Port               int           `mapstructure:"port" yaml:"port"`
	LogLevel           string        `mapstructure:"log_level" yaml:"log_level"`
	ReadHeaderTimeout  time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	ResponseDelay      time.Duration `mapstructure:"response_delay" yaml:"response_delay"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	TrustedProxies     []string      `mapstructure:"trusted_proxies" yaml:"trusted_proxies"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Port:              8080,
		LogLevel:          "info",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		ResponseDelay:     time.Second,
	}
}

// Addr is the listen address. The server binds all interfaces.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Port != 0 {
		c.Port = other.Port
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.ResponseDelay != 0 {
		c.ResponseDelay = other.ResponseDelay
	}
	if other.RateLimitPerMinute != 0 {
		c.RateLimitPerMinute = other.RateLimitPerMinute
	}
	if len(other.TrustedProxies) > 0 {
		c.TrustedProxies = other.TrustedProxies
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.ReadHeaderTimeout <= 0 {
		errs = append(errs, errors.New("read_header_timeout must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	if c.ResponseDelay < 0 {
		errs = append(errs, errors.New("response_delay must not be negative"))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must not be negative"))
	}
	return errors.Join(errs...)
}

type yamlView struct {
	Port               int      `yaml:"port"`
	LogLevel           string   `yaml:"log_level"`
	ReadHeaderTimeout  string   `yaml:"read_header_timeout"`
	ShutdownTimeout    string   `yaml:"shutdown_timeout"`
	ResponseDelay      string   `yaml:"response_delay"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	TrustedProxies     []string `yaml:"trusted_proxies,omitempty"`
}

// MarshalYAML renders durations in their string form so the output can be read back by Load.
func (c Config) MarshalYAML() (any, error) {
	return yamlView{
		Port:               c.Port,
		LogLevel:           c.LogLevel,
		ReadHeaderTimeout:  c.ReadHeaderTimeout.String(),
		ShutdownTimeout:    c.ShutdownTimeout.String(),
		ResponseDelay:      c.ResponseDelay.String(),
		RateLimitPerMinute: c.RateLimitPerMinute,
		TrustedProxies:     c.TrustedProxies,
	}, nil
}
