package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestProxyClient(t *testing.T, handler http.HandlerFunc) *ProxyClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewProxyClient(ProxyConfig{URL: server.URL, Model: "gpt-4o", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("new proxy client: %v", err)
	}
	return c
}

func TestProxyClient_CurrentEnvelope(t *testing.T) {
	var gotBody proxyRequest
	handler := func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"success":       true,
			"response":      "Here is your recommendation.",
			"model":         "gpt-4o",
			"finish_reason": "stop",
			"usage": map[string]any{
				"prompt_tokens":     120,
				"completion_tokens": 80,
				"total_tokens":      200,
			},
		})
	}

	c := newTestProxyClient(t, handler)
	resp, err := c.Complete(context.Background(), Request{
		System:   "You are a coach.",
		Messages: []Message{{Role: RoleUser, Content: "Advise me."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Here is your recommendation." {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.OutputTokens != 80 || resp.Usage.TotalTokens != 200 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.FinishReason != "end" {
		t.Fatalf("expected normalized finish reason, got %q", resp.FinishReason)
	}

	// The system prompt rides as a leading system-role message.
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != RoleSystem {
		t.Fatalf("expected system message first, got %+v", gotBody.Messages)
	}
	if gotBody.Model != "gpt-4o" {
		t.Fatalf("expected configured model, got %q", gotBody.Model)
	}
}

func TestProxyClient_LegacyContentEnvelope(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"content": "Legacy shaped reply.",
		})
	}

	c := newTestProxyClient(t, handler)
	resp, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Legacy shaped reply." {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}

func TestProxyClient_RawPassthroughEnvelope(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]any{"content": "Raw chat completion."},
					"finish_reason": "length",
				},
			},
		})
	}

	c := newTestProxyClient(t, handler)
	resp, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "Raw chat completion." {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
	if resp.FinishReason != "max_tokens" {
		t.Fatalf("expected normalized max_tokens, got %q", resp.FinishReason)
	}
}

func TestProxyClient_RemoteError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "upstream exploded",
		})
	}

	c := newTestProxyClient(t, handler)
	_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var remote *ErrRemote
	if !errors.As(err, &remote) {
		t.Fatalf("expected ErrRemote, got %v", err)
	}
	if remote.Message != "upstream exploded" {
		t.Fatalf("unexpected message: %q", remote.Message)
	}
}

func TestProxyClient_RateLimited(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}

	c := newTestProxyClient(t, handler)
	_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if rl.RetryAfter != 7*time.Second {
		t.Fatalf("expected 7s retry-after, got %v", rl.RetryAfter)
	}
}

func TestProxyClient_RateLimitHTTPDateRetryAfter(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", time.Now().Add(30*time.Second).UTC().Format(http.TimeFormat))
		w.WriteHeader(http.StatusTooManyRequests)
	}

	c := newTestProxyClient(t, handler)
	_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if rl.RetryAfter <= 0 || rl.RetryAfter > 30*time.Second {
		t.Fatalf("expected a delay derived from the date, got %v", rl.RetryAfter)
	}
}

func TestProxyClient_ServerError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}

	c := newTestProxyClient(t, handler)
	_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

	var unavailable *ErrUnavailable
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if unavailable.StatusCode != http.StatusBadGateway {
		t.Fatalf("unexpected status: %d", unavailable.StatusCode)
	}
}

func TestProxyClient_UnrecognizedEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "<html>gateway timeout</html>"},
		{"no text anywhere", `{"success": true}`},
		{"empty choices", `{"choices": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}
			c := newTestProxyClient(t, handler)
			_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})

			var bad *ErrBadEnvelope
			if !errors.As(err, &bad) {
				t.Fatalf("expected ErrBadEnvelope, got %v", err)
			}
		})
	}
}
