package recommend

import (
	"context"
	"log/slog"

	"ailit/internal/answers"
	"ailit/internal/llm"
	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/survey"
)

// Source records where a recommendation's text came from.
type Source string

const (
	SourceModel  Source = "model"
	SourceStatic Source = "static"
)

// Recommendation is one category's guidance, whether generated or canned.
type Recommendation struct {
	Category string        `json:"category"`
	Maturity scoring.Level `json:"maturity"`
	Score    float64       `json:"score"`
	Text     string        `json:"text"`
	Source   Source        `json:"source"`
}

// Generator produces one recommendation per category, in catalog order.
// Generation is deliberately sequential: each request carries a large prompt
// and the downstream proxy rate-limits aggressively, so firing four requests
// at once trades latency for failures.
type Generator struct {
	catalog  *survey.Catalog
	fetcher  *Fetcher
	logger   *slog.Logger
	disabled bool
}

// DisableModel routes every category straight to the static table without
// calling the model. Used when generation is switched off in config.
func (g *Generator) DisableModel() { g.disabled = true }

// NewGenerator builds a Generator over client with the default retry policy
// unless opts override it.
func NewGenerator(catalog *survey.Catalog, client llm.Client, logger *slog.Logger, opts ...FetcherOption) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		catalog: catalog,
		fetcher: NewFetcher(client, opts...),
		logger:  logger,
	}
}

// Generate walks every category and returns exactly one recommendation per
// category. It never returns fewer entries than categories and never fails:
// when the model cannot produce a usable answer for a category, that slot
// silently carries the static fallback text. Only context cancellation
// aborts the walk.
func (g *Generator) Generate(ctx context.Context, snap answers.Snapshot, result scoring.Result, prof profile.Profile) ([]Recommendation, error) {
	recs := make([]Recommendation, 0, len(g.catalog.Categories))

	for _, cat := range g.catalog.Categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs = append(recs, g.generateOne(ctx, cat, snap, result, prof))
	}
	return recs, nil
}

func (g *Generator) generateOne(ctx context.Context, cat survey.Category, snap answers.Snapshot, result scoring.Result, prof profile.Profile) Recommendation {
	score := result.Categories[cat.Name]
	level := result.CategoryMaturities[cat.Name]

	rec := Recommendation{
		Category: cat.Name,
		Maturity: level,
		Score:    score,
	}

	if g.disabled {
		rec.Text = StaticRecommendation(cat.Name, score)
		rec.Source = SourceStatic
		return rec
	}

	req, err := BuildPrompt(PromptInput{
		Category:    cat,
		Score:       score,
		Level:       level,
		Questions:   g.catalog.QuestionsFor(cat.Name),
		Snapshot:    snap,
		Nuance:      result.PerCategoryNuance[cat.Name],
		PerQuestion: result.PerQuestionNuance,
		Profile:     prof,
	})
	if err != nil {
		// No grounding lines: nothing was answered in this category.
		// Sending an ungrounded prompt yields generic filler, so skip
		// the model entirely.
		g.logger.Debug("using static recommendation", "category", cat.Name, "reason", err)
		rec.Text = StaticRecommendation(cat.Name, score)
		rec.Source = SourceStatic
		return rec
	}

	text, err := g.fetcher.Fetch(llm.WithPurpose(ctx, "recommendation:"+cat.Name), req)
	if err != nil {
		g.logger.Warn("recommendation generation failed, falling back to static text",
			"category", cat.Name, "error", err)
		rec.Text = StaticRecommendation(cat.Name, score)
		rec.Source = SourceStatic
		return rec
	}

	rec.Text = text
	rec.Source = SourceModel
	return rec
}
