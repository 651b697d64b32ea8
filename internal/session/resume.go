package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ailit/internal/profile"
	"ailit/internal/store"
)

// answerSet tolerates the legacy single-select format where an answer was a
// bare integer instead of an array. Old saved progress must keep loading
// after the multi-select migration.
type answerSet []int

func (a *answerSet) UnmarshalJSON(data []byte) error {
	var values []int
	if err := json.Unmarshal(data, &values); err == nil {
		*a = values
		return nil
	}
	var single int
	if err := json.Unmarshal(data, &single); err != nil {
		return fmt.Errorf("answer must be an integer or an array of integers: %w", err)
	}
	*a = []int{single}
	return nil
}

// sectionField tolerates the legacy format where the section was a numeric
// category index (0-3) instead of a phase name. Any non-negative index means
// the user was mid-questionnaire.
type sectionField string

func (s *sectionField) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*s = sectionField(name)
		return nil
	}
	var index int
	if err := json.Unmarshal(data, &index); err != nil {
		return fmt.Errorf("section must be a name or an index: %w", err)
	}
	if index >= 0 {
		*s = sectionField(SectionQuestions)
	}
	return nil
}

type resumeBlob struct {
	CurrentQuestionIndex int                  `json:"currentQuestionIndex"`
	CurrentSection       sectionField         `json:"currentSection"`
	Answers              map[string]answerSet `json:"answers"`
	Profile              *profile.Profile     `json:"profile,omitempty"`
	Timestamp            string               `json:"timestamp"`
}

// Save persists the session so a later run can resume it.
func (s *Session) Save(ctx context.Context, repo store.ProgressRepo) error {
	blob := resumeBlob{
		CurrentQuestionIndex: s.index,
		CurrentSection:       sectionField(s.section),
		Answers:              make(map[string]answerSet),
		Timestamp:            time.Now().UTC().Format(time.RFC3339),
	}
	if !s.profile.IsZero() {
		p := s.profile
		blob.Profile = &p
	}
	for _, q := range s.catalog.Questions {
		if values := s.answers.Get(q.ID); len(values) > 0 {
			blob.Answers[q.ID] = values
		}
	}

	data, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("marshaling progress: %w", err)
	}
	return repo.Save(ctx, data)
}

// Resume restores saved progress into the session. A missing or corrupt
// blob is not an error: the session simply starts fresh, and restored
// answers that no longer match the catalog are dropped without complaint.
// It reports whether anything was restored.
func (s *Session) Resume(ctx context.Context, repo store.ProgressRepo) (bool, error) {
	data, err := repo.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("loading progress: %w", err)
	}
	if data == nil {
		return false, nil
	}

	var blob resumeBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return false, nil
	}

	restore := make(map[string][]int, len(blob.Answers))
	for id, values := range blob.Answers {
		restore[id] = values
	}
	s.answers.Restore(restore)

	if blob.Profile != nil {
		s.profile = *blob.Profile
	}
	if blob.CurrentQuestionIndex >= 0 && blob.CurrentQuestionIndex < len(s.catalog.Questions) {
		s.index = blob.CurrentQuestionIndex
	}
	switch Section(blob.CurrentSection) {
	case SectionProfile, SectionQuestions, SectionResults:
		s.section = Section(blob.CurrentSection)
	}
	return true, nil
}

// Discard removes any saved progress.
func (s *Session) Discard(ctx context.Context, repo store.ProgressRepo) error {
	return repo.Clear(ctx)
}
