package recommend

import (
	"errors"
	"fmt"
	"strings"

	"ailit/internal/answers"
	"ailit/internal/llm"
	"ailit/internal/profile"
	"ailit/internal/scoring"
	"ailit/internal/survey"
)

// ErrNoGrounding is returned when a category has no renderable selected
// answers. A prompt without grounding lines produces generic boilerplate, so
// the caller must fall back to the static table instead of sending one.
var ErrNoGrounding = errors.New("no selected answers to ground the prompt on")

// PromptInput is the typed template data for one category's prompt. Filling
// a struct instead of concatenating ad hoc strings keeps prompt construction
// testable independent of exact wording.
type PromptInput struct {
	Category    survey.Category
	Score       float64
	Level       scoring.Level
	Questions   []survey.Question
	Snapshot    answers.Snapshot
	Nuance      scoring.CategoryNuance
	PerQuestion map[string]scoring.QuestionNuance
	Profile     profile.Profile
}

const systemPrompt = `You are an experienced AI literacy coach helping employees leverage AI tools effectively.

Company AI tools context:
- Primary tool: the approved AI assistant webapp (multi-modal uploads, web search, deep research mode)
- Employees can build and share custom assistants with their teams
- Direct API access is available for developers (not the webapp)
- The internal resource hub lists all approved tools; employees who cannot procure new tools should start there

Recommendation structure:
1. Overview (3-4 sentences): the key opportunity for their role at their current maturity level.
2. Three specific use cases:
   - Use case 1 (quick win): something they can try today at their current level, with steps and expected outcome.
   - Use case 2 (build on it): a more advanced application building on the first.
   - Use case 3 (stretch goal): a challenging capability to work toward over the next month.
3. Assistant tips: 2-3 specific features to leverage (note the higher hallucination risk of deep research and the need for verification).
4. Starter prompt: a complete, copy-paste ready prompt with [placeholders] they fill in.

Guidelines:
- Be extremely specific to their job title, team, and seniority. Reference real workflows for their function.
- Anchor every point in the literal answers they selected. Never restate the assessment category names when introducing advice.
- Include measurable outcomes (time saved, quality improvements, error reduction).
- Use markdown formatting: bold for emphasis, bullet lists for clarity.
- Be conversational but professional. Total length: 400-600 words.`

// toneCalibration adjusts vocabulary register and the kind of worked
// examples by career track and seniority tier. Calibration changes framing
// only; scores are computed before the profile is ever consulted.
var toneCalibration = map[profile.Track]map[profile.Tier]string{
	profile.TrackIC: {
		profile.TierJunior: "Speak to an early-career individual contributor: concrete, hands-on examples on their own tasks, no management framing. Define any advanced terminology.",
		profile.TierMid:    "Speak to an experienced individual contributor: examples should cover owning workstreams end to end and influencing peers without authority.",
		profile.TierSenior: "Speak to a senior individual contributor: examples should cover technical leadership, setting standards for others, and org-wide influence.",
	},
	profile.TrackManager: {
		profile.TierJunior: "Speak to a new people manager: examples should balance personal AI use with first steps in enabling a small team.",
		profile.TierMid:    "Speak to an experienced manager: examples should cover team enablement, delegation across reports, and coaching others on AI use.",
		profile.TierSenior: "Speak to a senior leader: examples should cover org-level strategy, cross-functional rollout, and cultural change.",
	},
}

// BuildPrompt renders the completion request for one category. It fails
// with ErrNoGrounding when no selected-answer lines can be rendered.
func BuildPrompt(in PromptInput) (llm.Request, error) {
	grounding := renderGrounding(in)
	if grounding == "" {
		return llm.Request{}, ErrNoGrounding
	}

	var b strings.Builder

	b.WriteString("I need a personalized AI literacy recommendation for an employee.\n\n")

	b.WriteString("Role context:\n")
	fmt.Fprintf(&b, "- Job title: %s\n", in.Profile.JobTitle)
	fmt.Fprintf(&b, "- Team: %s\n", in.Profile.Team)
	if in.Profile.SubDepartment != "" {
		fmt.Fprintf(&b, "- Sub-department: %s\n", in.Profile.SubDepartment)
	}
	if level, err := profile.ParseJobLevel(in.Profile.JobLevel); err == nil {
		fmt.Fprintf(&b, "- Level: %s (%s track, %s)\n", in.Profile.JobLevel, level.Track, level.Tier())
		if tone, ok := toneCalibration[level.Track][level.Tier()]; ok {
			fmt.Fprintf(&b, "- Tone: %s\n", tone)
		}
	}
	if in.Profile.AIUsageFrequency != "" {
		fmt.Fprintf(&b, "- Current AI usage: %s\n", in.Profile.AIUsageFrequency)
	}
	if len(in.Profile.ToolsUsed) > 0 {
		fmt.Fprintf(&b, "- Tools already used: %s\n", strings.Join(in.Profile.ToolsUsed, ", "))
	}
	if in.Profile.PrimaryWorkFocus != "" {
		fmt.Fprintf(&b, "- Primary work focus: %s\n", in.Profile.PrimaryWorkFocus)
	}

	fmt.Fprintf(&b, "\nCompetency assessed: %s — %s\n", in.Category.Name, in.Category.Description)
	fmt.Fprintf(&b, "Result: %s (%.2f/4.00)\n", in.Level, in.Score)

	b.WriteString("\nTheir selected answers (ground every point in these):\n")
	b.WriteString(grounding)

	b.WriteString(renderNuance(in))

	b.WriteString("\nInstructions:\n")
	b.WriteString("Generate one recommendation for this competency following the structure in your instructions. ")
	fmt.Fprintf(&b, "For the %s role in %s, think about their daily tasks, their biggest time sinks, the outputs they create, and who they collaborate with.\n", in.Profile.JobTitle, in.Profile.Team)

	return llm.Request{
		System:   systemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: b.String()}},
	}, nil
}

// renderGrounding renders every answered question in the category with its
// literal selected option text. Returns "" when nothing is answered.
func renderGrounding(in PromptInput) string {
	var b strings.Builder

	for _, q := range in.Questions {
		values := in.Snapshot.Values(q.ID)
		if len(values) == 0 {
			continue
		}

		fmt.Fprintf(&b, "\nQ: %s\n", q.Text)
		for _, v := range values {
			if opt := optionByValue(q, v); opt != nil {
				fmt.Fprintf(&b, "  Selected: %s (%d/4): %s\n", opt.Label, opt.Value, opt.Description)
			}
		}
		if n, ok := in.PerQuestion[q.ID]; ok && n.IsContextual {
			b.WriteString("  (They selected multiple behaviors for this question: their approach varies by situation.)\n")
		}
	}
	return b.String()
}

// renderNuance frames multi-select behavior for the model. Contextual
// answers get an explicit instruction not to flatten situational judgment
// into "pick the best answer" advice.
func renderNuance(in PromptInput) string {
	if in.Nuance.MultiSelectCount == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nNuance: %d of %d answered questions had multiple selections (%.0f%% contextual, average spread %.1f levels).\n",
		in.Nuance.MultiSelectCount, in.Nuance.TotalAnswered, in.Nuance.ContextualPct, in.Nuance.AvgSpread)
	b.WriteString("Where they selected multiple behaviors, do not push them toward the single \"best\" answer. Validate that adapting behavior to the situation is a strength, and advise on recognizing which context calls for which approach.\n")
	return b.String()
}

func optionByValue(q survey.Question, value int) *survey.Option {
	for i := range q.Options {
		if q.Options[i].Value == value {
			return &q.Options[i]
		}
	}
	return nil
}
