package llm

import (
	"fmt"
	"time"
)

// Config selects and configures a completion client.
type Config struct {
	// Client selects the transport.
	// Values: "proxy", "openai", "anthropic", "gemini", "mock"
	Client string `koanf:"client"`

	Proxy     ProxyConfig     `koanf:"proxy"`
	OpenAI    OpenAIConfig    `koanf:"openai"`
	Anthropic AnthropicConfig `koanf:"anthropic"`
	Gemini    GeminiConfig    `koanf:"gemini"`
}

// ProxyConfig holds settings for the hosted completion passthrough.
type ProxyConfig struct {
	URL     string        `koanf:"url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`    // Default: "gpt-4o"
	BaseURL string `koanf:"base_url"` // Optional override for compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"` // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `koanf:"api_key"`
	Model  string `koanf:"model"` // Default: "gemini-flash"
}

// DefaultConfig returns a Config with sensible defaults. The proxy is the
// default transport since it needs no local API key.
func DefaultConfig() Config {
	return Config{
		Client: "proxy",
		Proxy: ProxyConfig{
			Model:   "gpt-4o",
			Timeout: 60 * time.Second,
		},
		OpenAI:    OpenAIConfig{Model: "gpt-4o"},
		Anthropic: AnthropicConfig{Model: "claude-haiku"},
		Gemini:    GeminiConfig{Model: "gemini-flash"},
	}
}

// Validate checks that the selected client has its required settings.
func (c Config) Validate() error {
	switch c.Client {
	case "proxy":
		if c.Proxy.URL == "" {
			return fmt.Errorf("proxy URL is required for the proxy client")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OpenAI API key is required for the openai client")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("Anthropic API key is required for the anthropic client")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("Gemini API key is required for the gemini client")
		}
	case "mock":
		// No settings needed.
	default:
		return fmt.Errorf("unknown completion client: %q", c.Client)
	}
	return nil
}
