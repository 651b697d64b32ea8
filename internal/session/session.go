// Package session tracks one assessment in progress: current position,
// profile, live answers, and the frozen submission produced at the end.
package session

import (
	"time"

	"github.com/google/uuid"

	"ailit/internal/answers"
	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/survey"
)

// Section is the phase of the assessment flow the user is in.
type Section string

const (
	SectionProfile   Section = "profile"
	SectionQuestions Section = "questions"
	SectionResults   Section = "results"
)

// Session is the live state of one assessment run. Answers remain editable
// until Submit freezes them; nothing in a submission changes when the live
// store is edited afterwards.
type Session struct {
	catalog *survey.Catalog
	answers *answers.Store
	profile profile.Profile

	index   int
	section Section
}

// New starts a fresh session over catalog.
func New(catalog *survey.Catalog) *Session {
	return &Session{
		catalog: catalog,
		answers: answers.NewStore(catalog),
		section: SectionProfile,
	}
}

// Answers exposes the live answer store for toggling.
func (s *Session) Answers() *answers.Store { return s.answers }

// Profile returns the collected profile.
func (s *Session) Profile() profile.Profile { return s.profile }

// SetProfile stores the collected profile and moves to the questions phase.
func (s *Session) SetProfile(p profile.Profile) {
	s.profile = p
	if s.section == SectionProfile {
		s.section = SectionQuestions
	}
}

// Index is the current question position.
func (s *Session) Index() int { return s.index }

// Section is the current phase.
func (s *Session) Section() Section { return s.section }

// Advance moves to the next question, switching to results past the last
// one. It reports whether a question remains.
func (s *Session) Advance() bool {
	if s.index+1 >= len(s.catalog.Questions) {
		s.section = SectionResults
		return false
	}
	s.index++
	return true
}

// Back moves to the previous question if one exists.
func (s *Session) Back() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	return true
}

// Current returns the question at the current position, nil past the end.
func (s *Session) Current() *survey.Question {
	if s.index < 0 || s.index >= len(s.catalog.Questions) {
		return nil
	}
	return &s.catalog.Questions[s.index]
}

// Submission is the frozen output of a completed assessment. Its snapshot
// is a deep copy: editing the session afterwards cannot change it.
type Submission struct {
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
	Profile   profile.Profile  `json:"profile"`
	Snapshot  answers.Snapshot `json:"answers"`
	Result    scoring.Result   `json:"result"`
}

// Submit freezes the current answers and scores them. The session stays
// usable afterwards; the returned submission does not.
func (s *Session) Submit() Submission {
	snap := s.answers.Freeze()
	return Submission{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Profile:   s.profile,
		Snapshot:  snap,
		Result:    scoring.Score(snap, s.catalog),
	}
}
