package scoring

import (
	"ailit/internal/answers"
	"ailit/internal/survey"
)

// QuestionNuance describes the multi-select spread of a single answer.
// Nuance is signal, not score: it shapes how advice is framed but never
// moves the numeric maturity average.
type QuestionNuance struct {
	Count  int `json:"count"`
	Spread int `json:"spread"`
	// IsContextual marks answers where the respondent selected more than
	// one behavior, reading as "it depends on the situation".
	IsContextual bool `json:"isContextual"`
}

// CategoryNuance aggregates multi-select behavior across one category.
type CategoryNuance struct {
	MultiSelectCount int     `json:"multiSelectCount"`
	TotalAnswered    int     `json:"totalAnswered"`
	AvgSpread        float64 `json:"avgSpread"`
	ContextualPct    float64 `json:"contextualPct"`
}

// questionNuance computes the nuance signal for one selected-value set.
// Values must be sorted ascending, as answers.Snapshot guarantees.
func questionNuance(values []int) QuestionNuance {
	n := QuestionNuance{Count: len(values)}
	if n.Count > 1 {
		n.Spread = values[len(values)-1] - values[0]
		n.IsContextual = true
	}
	return n
}

// categoryNuance aggregates per-question nuance over a category's answered
// questions. AvgSpread averages only over multi-select answers.
func categoryNuance(snap answers.Snapshot, questions []survey.Question) CategoryNuance {
	var agg CategoryNuance
	var spreadSum int

	for _, q := range questions {
		values := snap.Values(q.ID)
		if len(values) == 0 {
			continue
		}
		agg.TotalAnswered++
		if len(values) > 1 {
			agg.MultiSelectCount++
			spreadSum += values[len(values)-1] - values[0]
		}
	}

	if agg.MultiSelectCount > 0 {
		agg.AvgSpread = float64(spreadSum) / float64(agg.MultiSelectCount)
	}
	if agg.TotalAnswered > 0 {
		agg.ContextualPct = 100 * float64(agg.MultiSelectCount) / float64(agg.TotalAnswered)
	}
	return agg
}
