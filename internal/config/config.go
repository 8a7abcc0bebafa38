// Package config defines service configuration and its loading.
//
// Conventions:
// - New(ctx) builds a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file and MATCHCLOCK_* env vars.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UpstreamBaseURL is the root of the match API, e.g. "http://localhost:8000/api".
	UpstreamBaseURL string `koanf:"upstream_base_url"`

	// UpstreamTimeoutMS bounds a single request to the match API.
	UpstreamTimeoutMS int `koanf:"upstream_timeout_ms"`

	// SiteTitle is shown in the page header.
	SiteTitle string `koanf:"site_title"`
}

// New creates a Config with defaults. The context is reserved for loaders
// that need it and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		UpstreamBaseURL:   "http://localhost:8000/api",
		UpstreamTimeoutMS: 20_000,
		SiteTitle:         "Upcoming",
	}
}

// UpstreamTimeout returns UpstreamTimeoutMS as a duration.
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamTimeoutMS) * time.Millisecond
}
