package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ailit/internal/store"
)

// fakeEventRepo records appended events in memory.
type fakeEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (f *fakeEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, data)
	return nil
}

func (f *fakeEventRepo) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) GetLLMEvent(context.Context, int) (*store.LLMEvent, error) {
	return nil, nil
}

func (f *fakeEventRepo) AppendSubmission(context.Context, store.SubmissionEventData) error {
	return nil
}

func TestWithLogging_RecordsSuccess(t *testing.T) {
	repo := &fakeEventRepo{}
	mock := NewMockClient(MockResponse{
		Text:  "a recommendation",
		Usage: Usage{InputTokens: 10, OutputTokens: 5},
	})
	c := WithLogging(mock, repo)

	ctx := WithPurpose(context.Background(), "recommendation:Delegation")
	resp, err := c.Complete(ctx, Request{
		System:   "coach",
		Messages: []Message{{Role: RoleUser, Content: "advise"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "a recommendation" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if !ev.Success {
		t.Error("expected success event")
	}
	if ev.Purpose != "recommendation:Delegation" {
		t.Errorf("unexpected purpose %q", ev.Purpose)
	}
	if ev.InputTokens != 10 || ev.OutputTokens != 5 {
		t.Errorf("unexpected tokens %+v", ev)
	}
	if !strings.Contains(ev.RequestBody, "[system]") || !strings.Contains(ev.RequestBody, "advise") {
		t.Errorf("request body not captured: %q", ev.RequestBody)
	}
	if ev.ResponseBody != "a recommendation" {
		t.Errorf("response body not captured: %q", ev.ResponseBody)
	}
}

func TestWithLogging_RecordsFailure(t *testing.T) {
	repo := &fakeEventRepo{}
	c := WithLogging(NewFailingClient(&ErrUnavailable{Err: errors.New("down")}), repo)

	_, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err == nil {
		t.Fatal("expected error")
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Success {
		t.Error("expected failure event")
	}
	if ev.ErrorMessage == "" {
		t.Error("expected error message")
	}
}

func TestWithLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &fakeEventRepo{err: errors.New("disk full")}
	c := WithLogging(NewMockClient(MockResponse{Text: "ok text"}), repo)

	resp, err := c.Complete(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "hi"}}})
	if err != nil {
		t.Fatalf("logging failure must not fail the request: %v", err)
	}
	if resp.Text != "ok text" {
		t.Fatalf("unexpected text: %q", resp.Text)
	}
}

func TestWithLogging_NilRepoPassthrough(t *testing.T) {
	mock := NewMockClient(MockResponse{Text: "ok"})
	if c := WithLogging(mock, nil); c != Client(mock) {
		t.Fatal("nil repo should return the inner client unwrapped")
	}
}
