package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings, populated from the environment.
// SERVICE1_* names are kept for compatibility with existing deployments.
type Config struct {
	Port            string  `env:"PORT" envDefault:"8001"`
	DatabasePath    string  `env:"DATABASE_PATH"`
	UpstreamURL     string  `env:"SERVICE1_URL" envDefault:"http://localhost:8000"`
	UpstreamTimeout int     `env:"SERVICE1_TIMEOUT" envDefault:"10"`
	AuthSecret      string  `env:"AUTH_SECRET"`
	APIKeyHash      string  `env:"API_KEY_HASH"`
	RateLimitRate   float64 `env:"RATE_LIMIT_RATE" envDefault:"1"`
	RateLimitBurst  float64 `env:"RATE_LIMIT_BURST" envDefault:"5"`
}

// Load parses configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.AuthSecret != "" && len(cfg.AuthSecret) < 32 {
		return Config{}, fmt.Errorf("AUTH_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if cfg.UpstreamTimeout <= 0 {
		return Config{}, fmt.Errorf("SERVICE1_TIMEOUT must be positive, got %d", cfg.UpstreamTimeout)
	}

	return cfg, nil
}

// UpstreamTimeoutDuration returns the upstream timeout as a time.Duration.
// The variable holds whole seconds to stay compatible with prior deployments.
func (c Config) UpstreamTimeoutDuration() time.Duration {
	return time.Duration(c.UpstreamTimeout) * time.Second
}
