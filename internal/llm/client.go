package llm

import "context"

// Client is the core abstraction for text completion. Implementations cover
// the hosted proxy endpoint and direct provider SDKs; callers see one
// interface regardless of transport.
type Client interface {
	// Complete sends a prompt and returns the generated text. Errors use
	// the typed taxonomy in errors.go so callers can decide what is
	// retryable.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this client is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt. Sets the model's role and constraints.
	System string

	// Messages is the conversation. For recommendation generation this is
	// a single user message.
	Messages []Message

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message is a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the message sender role.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Response holds the model's output.
type Response struct {
	// Text is the generated prose.
	Text string

	// Usage reports token consumption when the transport provides it.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// FinishReason indicates why generation stopped, normalized to
	// "end", "max_tokens", or "" when unknown.
	FinishReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
