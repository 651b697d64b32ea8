package recommend

import (
	"context"
	"errors"
	"testing"

	"ailit/internal/answers"
	"ailit/internal/llm"
	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/survey"
)

func serviceCatalog() *survey.Catalog {
	opts := []survey.Option{
		{Value: 1, Label: "Not Started", Description: "not yet"},
		{Value: 2, Label: "Compliant", Description: "when told"},
		{Value: 3, Label: "Competent", Description: "on my own"},
		{Value: 4, Label: "Creative", Description: "new ground"},
	}
	return &survey.Catalog{
		Categories: []survey.Category{
			{Name: CategoryDelegation, Description: "handing work to AI"},
			{Name: CategoryCommunication, Description: "prompting"},
			{Name: CategoryDiscernment, Description: "judging output"},
			{Name: CategoryResponsibility, Description: "owning results"},
		},
		Questions: []survey.Question{
			{ID: "d1", Category: CategoryDelegation, Text: "q", Options: opts},
			{ID: "c1", Category: CategoryCommunication, Text: "q", Options: opts},
			{ID: "j1", Category: CategoryDiscernment, Text: "q", Options: opts},
			{ID: "r1", Category: CategoryResponsibility, Text: "q", Options: opts},
		},
	}
}

func serviceProfile() profile.Profile {
	return profile.Profile{
		JobTitle:         "Account Executive",
		Team:             "Sales",
		JobLevel:         "P2",
		AIUsageFrequency: profile.UsageDaily,
	}
}

func TestGenerate_OnePerCategoryInOrder(t *testing.T) {
	catalog := serviceCatalog()
	snap := answers.Snapshot{"d1": {3}, "c1": {2}, "j1": {4}, "r1": {1}}
	result := scoring.Score(snap, catalog)

	mock := llm.NewMockClient(
		llm.MockResponse{Text: goodText},
		llm.MockResponse{Text: goodText},
		llm.MockResponse{Text: goodText},
		llm.MockResponse{Text: goodText},
	)
	gen := NewGenerator(catalog, mock, nil, noSleep(t))

	recs, err := gen.Generate(context.Background(), snap, result, serviceProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(recs))
	}
	wantOrder := []string{CategoryDelegation, CategoryCommunication, CategoryDiscernment, CategoryResponsibility}
	for i, rec := range recs {
		if rec.Category != wantOrder[i] {
			t.Errorf("position %d: got %s, want %s", i, rec.Category, wantOrder[i])
		}
		if rec.Source != SourceModel {
			t.Errorf("%s: expected model source, got %s", rec.Category, rec.Source)
		}
		if rec.Text != goodText {
			t.Errorf("%s: unexpected text", rec.Category)
		}
		if rec.Maturity != result.CategoryMaturities[rec.Category] {
			t.Errorf("%s: maturity mismatch", rec.Category)
		}
	}
	if mock.CallCount() != 4 {
		t.Fatalf("expected 4 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_FallsBackToStaticOnExhaustion(t *testing.T) {
	catalog := serviceCatalog()
	snap := answers.Snapshot{"d1": {3}, "c1": {2}, "j1": {4}, "r1": {1}}
	result := scoring.Score(snap, catalog)

	mock := llm.NewFailingClient(&llm.ErrUnavailable{Err: errors.New("down")})
	gen := NewGenerator(catalog, mock, nil, WithMaxRetries(2), noSleep(t))

	recs, err := gen.Generate(context.Background(), snap, result, serviceProfile())
	if err != nil {
		t.Fatalf("generation must not fail outright: %v", err)
	}
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Source != SourceStatic {
			t.Errorf("%s: expected static source", rec.Category)
		}
		want := StaticRecommendation(rec.Category, result.Categories[rec.Category])
		if rec.Text != want {
			t.Errorf("%s: expected exact static text", rec.Category)
		}
		if rec.Text == "" {
			t.Errorf("%s: empty recommendation", rec.Category)
		}
	}
	// Full budget spent per category: 4 categories x (retries+1).
	if mock.CallCount() != 12 {
		t.Fatalf("expected 12 calls, got %d", mock.CallCount())
	}
}

func TestGenerate_SkipsModelForUnansweredCategory(t *testing.T) {
	catalog := serviceCatalog()
	// Delegation answered, everything else untouched.
	snap := answers.Snapshot{"d1": {3}}
	result := scoring.Score(snap, catalog)

	mock := llm.NewMockClient(llm.MockResponse{Text: goodText})
	gen := NewGenerator(catalog, mock, nil, noSleep(t))

	recs, err := gen.Generate(context.Background(), snap, result, serviceProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call for the single answered category, got %d", mock.CallCount())
	}
	if recs[0].Source != SourceModel {
		t.Errorf("answered category should use the model, got %s", recs[0].Source)
	}
	for _, rec := range recs[1:] {
		if rec.Source != SourceStatic {
			t.Errorf("%s: unanswered category should use static text", rec.Category)
		}
		if rec.Maturity != scoring.LevelNotStarted {
			t.Errorf("%s: expected Not Started, got %s", rec.Category, rec.Maturity)
		}
	}
}

func TestGenerate_DisabledNeverCallsModel(t *testing.T) {
	catalog := serviceCatalog()
	snap := answers.Snapshot{"d1": {3}, "c1": {2}, "j1": {4}, "r1": {1}}
	result := scoring.Score(snap, catalog)

	mock := llm.NewMockClient(llm.MockResponse{Text: goodText})
	gen := NewGenerator(catalog, mock, nil, noSleep(t))
	gen.DisableModel()

	recs, err := gen.Generate(context.Background(), snap, result, serviceProfile())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("disabled generator must not call the model, got %d calls", mock.CallCount())
	}
	for _, rec := range recs {
		if rec.Source != SourceStatic || rec.Text == "" {
			t.Errorf("%s: expected static text, got %+v", rec.Category, rec)
		}
	}
}

func TestGenerate_ContextCancelAborts(t *testing.T) {
	catalog := serviceCatalog()
	snap := answers.Snapshot{"d1": {3}}
	result := scoring.Score(snap, catalog)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := NewGenerator(catalog, llm.NewMockClient(), nil, noSleep(t))
	_, err := gen.Generate(ctx, snap, result, serviceProfile())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
