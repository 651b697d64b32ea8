// Package config defines process configuration and its layered loading.
// Precedence, low to high: defaults, optional YAML file, environment.
package config

import (
	"fmt"
	"time"

	"ailit/internal/llm"
)

// Config is the full process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DBPath overrides the default database location.
	DBPath string `koanf:"db_path"`

	// AnalyticsURL is the webhook for completed-assessment events.
	// Empty disables collection.
	AnalyticsURL string `koanf:"analytics_url"`

	// AIEnabled switches recommendation generation on. When false, every
	// category uses its built-in recommendation text.
	AIEnabled bool `koanf:"ai_enabled"`

	// MaxRetries bounds regeneration attempts per category; total
	// attempts are MaxRetries+1.
	MaxRetries int `koanf:"max_retries"`

	// Backoff is the linear backoff base between attempts.
	Backoff time.Duration `koanf:"backoff"`

	// MaxTokens is the per-request completion budget.
	MaxTokens int `koanf:"max_tokens"`

	// Temperature is the sampling temperature for generation.
	Temperature float64 `koanf:"temperature"`

	// Addr is the listen address for the serve command.
	Addr string `koanf:"addr"`

	// AllowedOrigins restricts CORS on the serve command. Empty allows
	// any origin.
	AllowedOrigins []string `koanf:"allowed_origins"`

	LLM llm.Config `koanf:"llm"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogLevel:    "info",
		AIEnabled:   true,
		MaxRetries:  2,
		Backoff:     time.Second,
		MaxTokens:   1500,
		Temperature: 0.7,
		Addr:        ":8090",
		LLM:         llm.DefaultConfig(),
	}
}

// Validate checks cross-field consistency after loading.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must not be negative")
	}
	if c.Backoff < 0 {
		return fmt.Errorf("backoff must not be negative")
	}
	// LLM settings are validated by the commands that build a client;
	// commands that never call a model must work without any of them.
	return nil
}
