package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"ailit/internal/answers"
	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/session"
)

func testSubmission() session.Submission {
	return session.Submission{
		ID:        "sub-42",
		Timestamp: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Profile: profile.Profile{
			JobTitle:         "Writer",
			Team:             "Marketing",
			JobLevel:         "P2",
			AIUsageFrequency: profile.UsageWeekly,
			ToolsUsed:        []string{"assistant"},
		},
		Snapshot: answers.Snapshot{"q1": {2, 3}},
		Result: scoring.Result{
			Overall:         2.5,
			OverallMaturity: scoring.LevelCompetent,
			Categories:      map[string]float64{"Delegation": 2.5},
			CategoryMaturities: map[string]scoring.Level{
				"Delegation": scoring.LevelCompetent,
			},
		},
	}
}

func TestSink_DeliversEvent(t *testing.T) {
	var mu sync.Mutex
	var got Event
	var contentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode event: %v", err)
		}
	}))
	t.Cleanup(server.Close)

	sink := NewSink(server.URL, nil)
	sink.Record(context.Background(), testSubmission())
	sink.Close()

	mu.Lock()
	defer mu.Unlock()
	if contentType != "application/json" {
		t.Errorf("unexpected content type %q", contentType)
	}
	if got.SubmissionID != "sub-42" {
		t.Errorf("unexpected submission ID %q", got.SubmissionID)
	}
	if got.Timestamp != "2025-06-01T10:00:00Z" {
		t.Errorf("unexpected timestamp %q", got.Timestamp)
	}
	if got.JobTitle != "Writer" || got.Team != "Marketing" {
		t.Errorf("profile fields missing: %+v", got)
	}
	if got.OverallScore != 2.5 || got.OverallMaturity != scoring.LevelCompetent {
		t.Errorf("score fields missing: %+v", got)
	}
	if len(got.Responses["q1"]) != 2 {
		t.Errorf("responses missing: %+v", got.Responses)
	}
}

func TestSink_FailuresAreSwallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	// Record and Close must return normally whatever the endpoint does.
	sink := NewSink(server.URL, nil)
	sink.Record(context.Background(), testSubmission())
	sink.Close()

	dead := NewSink("http://127.0.0.1:1/unreachable", nil)
	dead.Record(context.Background(), testSubmission())
	dead.Close()
}

func TestSink_NilSinkIsInert(t *testing.T) {
	sink := NewSink("", nil)
	if sink != nil {
		t.Fatal("empty URL should disable the sink")
	}
	// Method calls on the nil sink are no-ops.
	sink.Record(context.Background(), testSubmission())
	sink.Close()
}
