package store

import (
	"context"
	"time"
)

// LLMRequestEventData captures the data for a single completion request
// event.
type LLMRequestEventData struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded completion request.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// SubmissionEventData records one completed assessment.
type SubmissionEventData struct {
	ID              string
	Overall         float64
	OverallMaturity string
	HasNotStarted   bool
	// Payload is the full scoring result and responses as JSON.
	Payload string
}

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit   int    // max results (0 = default 20)
	Purpose string // filter by purpose when non-empty
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records a completion request event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent completion events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if not found.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// AppendSubmission records a completed assessment.
	AppendSubmission(ctx context.Context, data SubmissionEventData) error
}

// ProgressRepo manages the single in-flight assessment resume blob.
type ProgressRepo interface {
	// Save stores the resume blob, replacing any previous one.
	Save(ctx context.Context, blob []byte) error

	// Load returns the saved blob, or (nil, nil) if none exists.
	Load(ctx context.Context) ([]byte, error)

	// Clear discards any saved blob.
	Clear(ctx context.Context) error
}
