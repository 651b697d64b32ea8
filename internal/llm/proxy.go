package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProxyClient talks to the hosted completion passthrough (a webhook that
// forwards chat-completion requests to the upstream API and wraps the reply
// in a success envelope). Several envelope generations are in the wild, so
// decoding accepts all known shapes.
type ProxyClient struct {
	url    string
	model  string
	client *http.Client
}

// NewProxyClient creates a client for the completion proxy at url.
func NewProxyClient(cfg ProxyConfig) (*ProxyClient, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("proxy URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ProxyClient{
		url:    cfg.URL,
		model:  cfg.Model,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// proxyRequest is the wire format the passthrough accepts.
type proxyRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
}

// proxyEnvelope is a union of every response shape the passthrough has ever
// produced: the current {success, response} form, the legacy
// {success, content} form, the raw chat-completion passthrough, and the
// in-band error form.
type proxyEnvelope struct {
	Success  *bool  `json:"success"`
	Response string `json:"response"`
	Content  string `json:"content"`
	Error    string `json:"error"`
	Model    string `json:"model"`
	Finish   string `json:"finish_reason"`
	Usage    struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (p *ProxyClient) Complete(ctx context.Context, req Request) (*Response, error) {
	body := proxyRequest{
		Messages:    buildWireMessages(req),
		Model:       p.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &ErrUnavailable{Err: err}
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &ErrRateLimit{RetryAfter: parseRetryAfter(resp), Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErrUnavailable{StatusCode: resp.StatusCode, Err: fmt.Errorf("%s", bytes.TrimSpace(raw))}
	}

	return decodeEnvelope(raw)
}

func (p *ProxyClient) ModelID() string {
	if p.model != "" {
		return p.model
	}
	return "proxy"
}

// decodeEnvelope normalizes any known response envelope into a Response.
func decodeEnvelope(raw []byte) (*Response, error) {
	var env proxyEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ErrBadEnvelope{Body: raw, Err: err}
	}

	if env.Success != nil && !*env.Success {
		return nil, &ErrRemote{Message: env.Error}
	}

	text := env.Response
	finish := env.Finish
	if text == "" {
		text = env.Content
	}
	if text == "" && len(env.Choices) > 0 {
		text = env.Choices[0].Message.Content
		if finish == "" {
			finish = env.Choices[0].FinishReason
		}
	}
	if text == "" {
		return nil, &ErrBadEnvelope{Body: raw, Err: fmt.Errorf("no text in any known envelope field")}
	}

	return &Response{
		Text:  text,
		Model: env.Model,
		Usage: Usage{
			InputTokens:  env.Usage.PromptTokens,
			OutputTokens: env.Usage.CompletionTokens,
			TotalTokens:  env.Usage.TotalTokens,
		},
		FinishReason: normalizeFinishReason(finish),
	}, nil
}

// buildWireMessages prepends the system prompt as a system-role message, the
// form the passthrough expects.
func buildWireMessages(req Request) []Message {
	var out []Message
	if req.System != "" {
		out = append(out, Message{Role: RoleSystem, Content: req.System})
	}
	return append(out, req.Messages...)
}

func normalizeFinishReason(reason string) string {
	switch reason {
	case "stop", "end", "end_turn":
		return "end"
	case "length", "max_tokens":
		return "max_tokens"
	default:
		return reason
	}
}

// parseRetryAfter reads the Retry-After header in either of its two forms:
// delta-seconds or an HTTP-date.
func parseRetryAfter(resp *http.Response) time.Duration {
	s := resp.Header.Get("Retry-After")
	if s == "" {
		return 0
	}
	if d, err := time.ParseDuration(s + "s"); err == nil {
		return d
	}
	if at, err := http.ParseTime(s); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
