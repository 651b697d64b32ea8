package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ailit/internal/llm"
)

const (
	// DefaultMaxRetries gives retries+1 total attempts per category.
	DefaultMaxRetries = 2
	// DefaultBackoff is multiplied by the attempt number, so waits grow
	// linearly: backoff, 2*backoff, 3*backoff.
	DefaultBackoff = time.Second

	maxRecommendationTokens = 1500
	defaultTemperature      = 0.7
)

var errNonAnswer = errors.New("model returned a clarifying question instead of a recommendation")

// Fetcher calls the model with bounded retries. Every failure mode counts
// against the same budget: transport errors, remote errors, bad envelopes,
// and responses that are not actually recommendations. Only context
// cancellation stops the loop early.
type Fetcher struct {
	client      llm.Client
	maxRetries  int
	backoff     time.Duration
	maxTokens   int
	temperature float64

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// FetcherOption mutates a Fetcher during construction.
type FetcherOption func(*Fetcher)

// WithMaxRetries overrides the retry budget. Negative values clamp to zero,
// meaning a single attempt.
func WithMaxRetries(n int) FetcherOption {
	return func(f *Fetcher) {
		if n < 0 {
			n = 0
		}
		f.maxRetries = n
	}
}

// WithBackoff overrides the linear backoff base.
func WithBackoff(d time.Duration) FetcherOption {
	return func(f *Fetcher) { f.backoff = d }
}

// WithMaxTokens overrides the per-request completion budget.
func WithMaxTokens(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxTokens = n
		}
	}
}

// WithTemperature overrides the sampling temperature. Zero is a valid
// setting (greedy decoding); negative values are ignored.
func WithTemperature(temp float64) FetcherOption {
	return func(f *Fetcher) {
		if temp >= 0 {
			f.temperature = temp
		}
	}
}

func withSleep(fn func(ctx context.Context, d time.Duration) error) FetcherOption {
	return func(f *Fetcher) { f.sleep = fn }
}

// NewFetcher wraps client with the retry policy.
func NewFetcher(client llm.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client:      client,
		maxRetries:  DefaultMaxRetries,
		backoff:     DefaultBackoff,
		maxTokens:   maxRecommendationTokens,
		temperature: defaultTemperature,
		sleep:       sleepCtx,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch runs req until a usable recommendation comes back or the budget is
// exhausted. The returned error wraps the last attempt's failure.
func (f *Fetcher) Fetch(ctx context.Context, req llm.Request) (string, error) {
	// The fetcher owns the sampling knobs; prompt construction never sets
	// them, and stamping unconditionally keeps a configured temperature of
	// zero distinguishable from an unset one.
	req.MaxTokens = f.maxTokens
	req.Temperature = f.temperature

	var lastErr error
	attempts := f.maxRetries + 1

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := f.sleep(ctx, f.backoff*time.Duration(attempt-1)); err != nil {
				return "", err
			}
		}

		resp, err := f.client.Complete(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			continue
		}

		if IsNonAnswer(resp.Text) {
			lastErr = errNonAnswer
			continue
		}

		return resp.Text, nil
	}

	return "", fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
