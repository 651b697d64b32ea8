package ui

import (
	"context"
	"reflect"
	"testing"

	"ailit/internal/profile"
	"ailit/internal/session"
	"ailit/internal/survey"
	"ailit/internal/ui/components"
)

func validProfileFixture() profile.Profile {
	return profile.Profile{
		JobTitle:         "Analyst",
		Team:             "Finance",
		JobLevel:         "P2",
		AIUsageFrequency: profile.UsageWeekly,
	}
}

type memProgressRepo struct {
	blob []byte
}

func (m *memProgressRepo) Save(_ context.Context, blob []byte) error {
	m.blob = blob
	return nil
}

func (m *memProgressRepo) Load(context.Context) ([]byte, error) {
	return m.blob, nil
}

func (m *memProgressRepo) Clear(context.Context) error {
	m.blob = nil
	return nil
}

func uiCatalog() *survey.Catalog {
	opts := []survey.Option{
		{Value: 1, Label: "rarely", Description: "not yet"},
		{Value: 2, Label: "sometimes", Description: "on request"},
		{Value: 3, Label: "often", Description: "habitually"},
		{Value: 4, Label: "always", Description: "by default"},
	}
	return &survey.Catalog{
		Categories: []survey.Category{{Name: "Delegation"}},
		Questions: []survey.Question{
			{ID: "q1", Text: "How often do you hand work off?", Category: "Delegation", Options: opts},
			{ID: "q2", Text: "How do you brief the work?", Category: "Delegation", Options: opts},
		},
	}
}

func TestSyncQuestion_MirrorsSavedAnswers(t *testing.T) {
	catalog := uiCatalog()
	sess := session.New(catalog)
	if err := sess.Answers().Toggle("q1", 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := sess.Answers().Toggle("q1", 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	sess.SetProfile(validProfileFixture())

	m := NewModel(sess, catalog, &memProgressRepo{})
	if m.question.Question != "How often do you hand work off?" {
		t.Fatalf("unexpected question: %q", m.question.Question)
	}
	// Option values 2 and 4 sit at indexes 1 and 3.
	if !m.question.Chosen[1] || !m.question.Chosen[3] {
		t.Fatalf("expected indexes 1 and 3 checked, got %v", m.question.Chosen)
	}
	if m.question.ChosenCount() != 2 {
		t.Fatalf("expected 2 checked, got %d", m.question.ChosenCount())
	}
}

func TestToggle_UpdatesStoreAndCheckboxes(t *testing.T) {
	catalog := uiCatalog()
	sess := session.New(catalog)
	sess.SetProfile(validProfileFixture())
	repo := &memProgressRepo{}

	m := NewModel(sess, catalog, repo)
	q := sess.Current()

	m.toggle(q, 0)
	if got := sess.Answers().Get("q1"); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("expected [1], got %v", got)
	}
	if !m.question.Chosen[0] {
		t.Fatal("checkbox not checked after toggle")
	}
	if repo.blob == nil {
		t.Fatal("expected progress saved after toggle")
	}

	// Toggling again unchecks.
	m.toggle(q, 0)
	if got := sess.Answers().Get("q1"); len(got) != 0 {
		t.Fatalf("expected empty after second toggle, got %v", got)
	}
	if m.question.Chosen[0] {
		t.Fatal("checkbox still checked after second toggle")
	}

	// Out-of-range index is a no-op.
	m.toggle(q, 9)
	if m.question.ChosenCount() != 0 {
		t.Fatal("out-of-range toggle must not change state")
	}
}

func TestInvalidField_FollowsValidationOrder(t *testing.T) {
	p := validProfileFixture()

	p.JobTitle = ""
	if got := invalidField(p); got != fieldJobTitle {
		t.Fatalf("expected job title field, got %d", got)
	}

	p = validProfileFixture()
	p.Team = " "
	if got := invalidField(p); got != fieldTeam {
		t.Fatalf("expected team field, got %d", got)
	}

	p = validProfileFixture()
	p.JobLevel = "X9"
	if got := invalidField(p); got != fieldJobLevel {
		t.Fatalf("expected job level field, got %d", got)
	}

	p = validProfileFixture()
	p.AIUsageFrequency = "hourly"
	if got := invalidField(p); got != fieldAIUsage {
		t.Fatalf("expected usage field, got %d", got)
	}
}

func TestProgressBar_BoundedAtExtremes(t *testing.T) {
	for _, tc := range []struct {
		current, total int
	}{
		{0, 15}, {15, 15}, {20, 15}, {0, 0},
	} {
		bar := components.NewProgressBar("Delegation", tc.current, tc.total, 40)
		if bar.View() == "" {
			t.Fatalf("empty bar for %d/%d", tc.current, tc.total)
		}
	}
}

func TestMultiSelect_ViewMarksChecked(t *testing.T) {
	ms := components.NewMultiSelect("Pick", []string{"a", "b"})
	ms.Chosen[1] = true

	view := ms.View()
	if view == "" {
		t.Fatal("empty view")
	}
	if ms.ChosenCount() != 1 {
		t.Fatalf("expected 1 checked, got %d", ms.ChosenCount())
	}
}
