package llm

import (
	"fmt"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrUnavailable indicates the endpoint is down, unreachable, or answered
// with a non-2xx status.
type ErrUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrUnavailable) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("completion endpoint returned %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("completion endpoint unavailable: %v", e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrBadEnvelope indicates the response body matched none of the known
// response envelope shapes, or carried no text.
type ErrBadEnvelope struct {
	Body []byte
	Err  error
}

func (e *ErrBadEnvelope) Error() string {
	return fmt.Sprintf("unrecognized response envelope: %v", e.Err)
}

func (e *ErrBadEnvelope) Unwrap() error { return e.Err }

// ErrRemote indicates the endpoint reported a failure in-band
// ({"success": false, "error": ...}).
type ErrRemote struct {
	Message string
}

func (e *ErrRemote) Error() string {
	return fmt.Sprintf("remote completion failed: %s", e.Message)
}
