// Package scoring derives maturity scores from a frozen answer snapshot.
// All functions are pure: re-scoring an unchanged snapshot yields identical
// results, and partially completed assessments degrade gracefully instead of
// erroring.
package scoring

import (
	"ailit/internal/answers"
	"ailit/internal/survey"
)

// Result is the complete scoring outcome for one submission.
type Result struct {
	Overall         float64 `json:"overall"`
	OverallMaturity Level   `json:"overallMaturity"`

	// HasNotStarted is set when any category classifies as Not Started.
	// The four competencies are jointly necessary, not compensable: one
	// Not Started category caps the overall label regardless of the
	// numeric average.
	HasNotStarted bool `json:"hasNotStarted"`

	Categories         map[string]float64 `json:"categories"`
	CategoryMaturities map[string]Level   `json:"categoryMaturities"`

	PerQuestionNuance map[string]QuestionNuance `json:"perQuestionNuance"`
	PerCategoryNuance map[string]CategoryNuance `json:"perCategoryNuance"`
}

// Score computes per-category and overall maturity from a frozen snapshot.
// Per-question score is the peak of the selected set; category score is the
// mean over answered questions only (no zero-fill); a category with no
// answers scores 0 and classifies Not Started.
func Score(snap answers.Snapshot, catalog *survey.Catalog) Result {
	res := Result{
		Categories:         make(map[string]float64, len(catalog.Categories)),
		CategoryMaturities: make(map[string]Level, len(catalog.Categories)),
		PerQuestionNuance:  make(map[string]QuestionNuance),
		PerCategoryNuance:  make(map[string]CategoryNuance, len(catalog.Categories)),
	}

	var sum float64
	for _, cat := range catalog.Categories {
		questions := catalog.QuestionsFor(cat.Name)

		var total, count int
		for _, q := range questions {
			values := snap.Values(q.ID)
			if len(values) == 0 {
				continue
			}
			total += snap.Peak(q.ID)
			count++
			res.PerQuestionNuance[q.ID] = questionNuance(values)
		}

		var avg float64
		if count > 0 {
			avg = float64(total) / float64(count)
		}
		level := Classify(avg)

		res.Categories[cat.Name] = avg
		res.CategoryMaturities[cat.Name] = level
		res.PerCategoryNuance[cat.Name] = categoryNuance(snap, questions)
		if level == LevelNotStarted {
			res.HasNotStarted = true
		}
		sum += avg
	}

	if len(catalog.Categories) > 0 {
		res.Overall = sum / float64(len(catalog.Categories))
	}
	res.OverallMaturity = Classify(res.Overall)
	if res.HasNotStarted {
		res.OverallMaturity = LevelNotStarted
	}
	return res
}
