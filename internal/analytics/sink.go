// Package analytics ships completed-assessment events to an external
// collection endpoint. Delivery is best effort: analytics must never block
// or fail the assessment itself.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"ailit/internal/scoring"
	"ailit/internal/session"
)

const defaultTimeout = 10 * time.Second

// Event is the wire payload for one completed assessment.
type Event struct {
	Timestamp        string                   `json:"timestamp"`
	SubmissionID     string                   `json:"submissionId"`
	JobTitle         string                   `json:"jobTitle"`
	Team             string                   `json:"team"`
	SubDepartment    string                   `json:"subDepartment,omitempty"`
	JobLevel         string                   `json:"jobLevel"`
	AIUsageFrequency string                   `json:"aiUsageFrequency"`
	ToolsUsed        []string                 `json:"toolsUsed"`
	PrimaryWorkFocus string                   `json:"primaryWorkFocus,omitempty"`
	OverallScore     float64                  `json:"overallScore"`
	OverallMaturity  scoring.Level            `json:"overallMaturity"`
	CategoryScores   map[string]float64       `json:"categoryScores"`
	CategoryLevels   map[string]scoring.Level `json:"categoryLevels"`
	Responses        map[string][]int         `json:"responses"`
}

// Sink posts events to a webhook. A nil Sink or empty URL disables
// collection entirely.
type Sink struct {
	url    string
	client *http.Client
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewSink builds a sink for url. An empty url returns nil, which every
// method tolerates.
func NewSink(url string, logger *slog.Logger) *Sink {
	if url == "" {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
		logger: logger,
	}
}

// Record ships a submission in the background. Failures are logged and
// swallowed; the caller never observes them.
func (s *Sink) Record(ctx context.Context, sub session.Submission) {
	if s == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.post(ctx, eventFromSubmission(sub)); err != nil {
			s.logger.Warn("analytics delivery failed", "error", err)
		}
	}()
}

// Close waits for in-flight deliveries to finish.
func (s *Sink) Close() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

func (s *Sink) post(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned status %d", resp.StatusCode)
	}
	return nil
}

func eventFromSubmission(sub session.Submission) Event {
	responses := make(map[string][]int, len(sub.Snapshot))
	for id := range sub.Snapshot {
		responses[id] = sub.Snapshot.Values(id)
	}
	return Event{
		Timestamp:        sub.Timestamp.Format(time.RFC3339),
		SubmissionID:     sub.ID,
		JobTitle:         sub.Profile.JobTitle,
		Team:             sub.Profile.Team,
		SubDepartment:    sub.Profile.SubDepartment,
		JobLevel:         sub.Profile.JobLevel,
		AIUsageFrequency: string(sub.Profile.AIUsageFrequency),
		ToolsUsed:        sub.Profile.ToolsUsed,
		PrimaryWorkFocus: sub.Profile.PrimaryWorkFocus,
		OverallScore:     sub.Result.Overall,
		OverallMaturity:  sub.Result.OverallMaturity,
		CategoryScores:   sub.Result.Categories,
		CategoryLevels:   sub.Result.CategoryMaturities,
		Responses:        responses,
	}
}
