package llm

import (
	"context"
	"fmt"

	"ailit/internal/store"
)

// NewClient creates a Client from configuration, wrapped with event logging.
// Retry is owned by the recommendation fetcher so that attempt accounting
// stays in one place.
func NewClient(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Client, error) {
	var base Client
	var err error

	switch cfg.Client {
	case "proxy":
		base, err = NewProxyClient(cfg.Proxy)
	case "openai":
		base, err = NewOpenAIClient(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicClient(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiClient(ctx, cfg.Gemini)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown completion client: %q", cfg.Client)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s client: %w", cfg.Client, err)
	}

	return WithLogging(base, eventRepo), nil
}
