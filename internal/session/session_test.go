package session

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/survey"
)

type memProgressRepo struct {
	blob    []byte
	loadErr error
}

func (m *memProgressRepo) Save(_ context.Context, blob []byte) error {
	m.blob = blob
	return nil
}

func (m *memProgressRepo) Load(context.Context) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.blob, nil
}

func (m *memProgressRepo) Clear(context.Context) error {
	m.blob = nil
	return nil
}

func sessionCatalog() *survey.Catalog {
	opts := []survey.Option{
		{Value: 1, Label: "a"}, {Value: 2, Label: "b"},
		{Value: 3, Label: "c"}, {Value: 4, Label: "d"},
	}
	return &survey.Catalog{
		Categories: []survey.Category{{Name: "Delegation"}, {Name: "Communication"}},
		Questions: []survey.Question{
			{ID: "q1", Category: "Delegation", Options: opts},
			{ID: "q2", Category: "Delegation", Options: opts},
			{ID: "q3", Category: "Communication", Options: opts},
		},
	}
}

func testProfile() profile.Profile {
	return profile.Profile{
		JobTitle:         "Designer",
		Team:             "Product",
		JobLevel:         "P2",
		AIUsageFrequency: profile.UsageMonthly,
	}
}

func TestSaveResume_Roundtrip(t *testing.T) {
	ctx := context.Background()
	catalog := sessionCatalog()
	repo := &memProgressRepo{}

	s := New(catalog)
	s.SetProfile(testProfile())
	if err := s.Answers().Toggle("q1", 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := s.Answers().Toggle("q1", 4); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	s.Advance()
	if err := s.Save(ctx, repo); err != nil {
		t.Fatalf("save: %v", err)
	}

	restored := New(catalog)
	resumed, err := restored.Resume(ctx, repo)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !resumed {
		t.Fatal("expected resume to find saved progress")
	}
	if got := restored.Answers().Get("q1"); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("expected [2 4], got %v", got)
	}
	if restored.Index() != 1 {
		t.Fatalf("expected index 1, got %d", restored.Index())
	}
	if restored.Section() != SectionQuestions {
		t.Fatalf("expected questions section, got %s", restored.Section())
	}
	if restored.Profile().JobTitle != "Designer" {
		t.Fatalf("profile not restored: %+v", restored.Profile())
	}
}

func TestResume_LegacyScalarAnswers(t *testing.T) {
	// Saved progress from before multi-select stored answers as bare
	// integers and the section as a numeric index; bare answers must load
	// as single-element sets.
	repo := &memProgressRepo{blob: []byte(`{
		"currentQuestionIndex": 1,
		"currentSection": 0,
		"answers": {"q1": 3, "q2": [1, 4]},
		"timestamp": "2025-06-01T10:00:00Z"
	}`)}

	s := New(sessionCatalog())
	resumed, err := s.Resume(context.Background(), repo)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !resumed {
		t.Fatal("expected resume")
	}
	if got := s.Answers().Get("q1"); !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("expected migrated [3], got %v", got)
	}
	if got := s.Answers().Get("q2"); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("expected [1 4], got %v", got)
	}
	if s.Section() != SectionQuestions {
		t.Fatalf("numeric section index must resume mid-questionnaire, got %s", s.Section())
	}
	if s.Index() != 1 {
		t.Fatalf("expected index 1, got %d", s.Index())
	}
}

func TestResume_SectionIndexVariants(t *testing.T) {
	for _, tc := range []struct {
		name    string
		section string
		want    Section
	}{
		{"last category index", "3", SectionQuestions},
		{"named section", `"results"`, SectionResults},
		{"negative index ignored", "-1", SectionProfile},
	} {
		t.Run(tc.name, func(t *testing.T) {
			repo := &memProgressRepo{blob: []byte(`{
				"currentQuestionIndex": 0,
				"currentSection": ` + tc.section + `,
				"answers": {}
			}`)}
			s := New(sessionCatalog())
			if _, err := s.Resume(context.Background(), repo); err != nil {
				t.Fatalf("resume: %v", err)
			}
			if s.Section() != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, s.Section())
			}
		})
	}
}

func TestResume_CorruptBlobStartsFresh(t *testing.T) {
	repo := &memProgressRepo{blob: []byte(`{not json`)}

	s := New(sessionCatalog())
	resumed, err := s.Resume(context.Background(), repo)
	if err != nil {
		t.Fatalf("corrupt blob must not error: %v", err)
	}
	if resumed {
		t.Fatal("corrupt blob must not count as resumed")
	}
	if s.Answers().AnsweredCount() != 0 {
		t.Fatal("expected fresh session")
	}
}

func TestResume_OutOfRangeIndexIgnored(t *testing.T) {
	repo := &memProgressRepo{blob: []byte(`{
		"currentQuestionIndex": 99,
		"currentSection": "limbo",
		"answers": {}
	}`)}

	s := New(sessionCatalog())
	if _, err := s.Resume(context.Background(), repo); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if s.Index() != 0 {
		t.Fatalf("out-of-range index must be ignored, got %d", s.Index())
	}
	if s.Section() != SectionProfile {
		t.Fatalf("unknown section must be ignored, got %s", s.Section())
	}
}

func TestResume_RepoErrorPropagates(t *testing.T) {
	repo := &memProgressRepo{loadErr: errors.New("disk gone")}

	s := New(sessionCatalog())
	if _, err := s.Resume(context.Background(), repo); err == nil {
		t.Fatal("expected repo error to propagate")
	}
}

func TestAdvanceBack_Bounds(t *testing.T) {
	s := New(sessionCatalog())
	s.SetProfile(testProfile())

	if s.Back() {
		t.Fatal("back at index 0 must fail")
	}
	if !s.Advance() || !s.Advance() {
		t.Fatal("expected room to advance twice")
	}
	if s.Advance() {
		t.Fatal("advancing past the last question must fail")
	}
	if s.Section() != SectionResults {
		t.Fatalf("expected results section, got %s", s.Section())
	}
	if s.Current() != nil {
		// Index stays on the last question after the section flip.
		t.Log("current question still addressable after finish")
	}
}

func TestSubmit_FrozenAgainstLaterEdits(t *testing.T) {
	s := New(sessionCatalog())
	s.SetProfile(testProfile())
	for _, tog := range []struct {
		q string
		v int
	}{{"q1", 2}, {"q2", 3}, {"q3", 4}} {
		if err := s.Answers().Toggle(tog.q, tog.v); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}

	sub := s.Submit()
	if sub.ID == "" {
		t.Fatal("expected a submission ID")
	}
	if sub.Result.OverallMaturity == scoring.LevelNotStarted {
		t.Fatalf("unexpected maturity: %v", sub.Result.OverallMaturity)
	}

	// Clearing the live answers must not touch the frozen submission.
	s.Answers().Clear()
	if got := sub.Snapshot.Values("q1"); !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("submission changed after live edit: %v", got)
	}

	// Two submissions get distinct IDs.
	if s.Submit().ID == sub.ID {
		t.Fatal("expected unique submission IDs")
	}
}
