// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and the environment.
// - External errors are wrapped with this package's sentinel kinds.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. "127.0.0.1:5000".
	Addr string `koanf:"addr"`

	// ShutdownTimeoutMS bounds graceful shutdown after a signal.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// MetricsEnabled exposes GET /metrics and records Prometheus series.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// DocsEnabled serves the OpenAPI document and the ReDoc page.
	DocsEnabled bool `koanf:"docs_enabled"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              "127.0.0.1:5000",
		ShutdownTimeoutMS: 30_000,
		MetricsEnabled:    true,
		DocsEnabled:       true,
	}
}

// ShutdownTimeout returns ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}
