package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ailit/internal/analytics"
	"ailit/internal/config"
	"ailit/internal/llm"
	"ailit/internal/recommend"
	"ailit/internal/session"
	"ailit/internal/store"
	"ailit/internal/survey"
	"ailit/internal/ui"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Take the assessment",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssessment(cmd)
	},
}

// runAssessment drives the full interactive flow: profile, questions,
// scoring, and recommendation generation.
func runAssessment(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	catalog, err := survey.Load()
	if err != nil {
		return fmt.Errorf("load question catalog: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	sess := session.New(catalog)
	progress := st.ProgressRepo()
	if resumed, err := sess.Resume(ctx, progress); err != nil {
		return err
	} else if resumed {
		fmt.Fprintf(out, "Resuming saved assessment (%d of %d questions answered).\n\n",
			sess.Answers().AnsweredCount(), len(catalog.Questions))
	}

	if sess.Section() != session.SectionResults {
		completed, err := ui.Run(sess, catalog, progress)
		if err != nil {
			return fmt.Errorf("run assessment: %w", err)
		}
		if !completed {
			fmt.Fprintln(out, "Progress saved. Run again to resume.")
			return nil
		}
	}

	sub := sess.Submit()
	printResults(out, catalog, sub)

	// Build the model client only at the end; scoring never needs one.
	var client llm.Client
	aiEnabled := cfg.AIEnabled
	if aiEnabled {
		if err := cfg.LLM.Validate(); err != nil {
			logger.Warn("completion client not configured, using built-in recommendations", "error", err)
			aiEnabled = false
		} else if client, err = llm.NewClient(ctx, cfg.LLM, st.EventRepo()); err != nil {
			logger.Warn("completion client unavailable, using built-in recommendations", "error", err)
			aiEnabled = false
		}
	}

	gen := recommend.NewGenerator(catalog, client, logger,
		recommend.WithMaxRetries(cfg.MaxRetries),
		recommend.WithBackoff(cfg.Backoff),
		recommend.WithMaxTokens(cfg.MaxTokens),
		recommend.WithTemperature(cfg.Temperature))
	if !aiEnabled {
		gen.DisableModel()
	}

	fmt.Fprintln(out, "\nGenerating recommendations...")
	recs, err := gen.Generate(ctx, sub.Snapshot, sub.Result, sub.Profile)
	if err != nil {
		return err
	}
	printRecommendations(out, recs)

	if err := recordSubmission(ctx, st, sub); err != nil {
		logger.Warn("recording submission failed", "error", err)
	}
	sink := analytics.NewSink(cfg.AnalyticsURL, logger)
	sink.Record(ctx, sub)
	sink.Close()

	if err := sess.Discard(ctx, progress); err != nil {
		logger.Warn("clearing saved progress failed", "error", err)
	}
	return nil
}

func printResults(out io.Writer, catalog *survey.Catalog, sub session.Submission) {
	fmt.Fprintln(out, "\nYour results")
	fmt.Fprintln(out, strings.Repeat("─", 44))
	for _, cat := range catalog.Categories {
		fmt.Fprintf(out, "%-16s  %.2f / 4.00   %s\n",
			cat.Name, sub.Result.Categories[cat.Name], sub.Result.CategoryMaturities[cat.Name])
	}
	fmt.Fprintln(out, strings.Repeat("─", 44))
	fmt.Fprintf(out, "%-16s  %.2f / 4.00   %s\n", "Overall", sub.Result.Overall, sub.Result.OverallMaturity)
	if sub.Result.HasNotStarted && sub.Result.Overall >= 1.5 {
		fmt.Fprintln(out, "\nOne or more competencies are still at Not Started; overall maturity stays there until every competency is underway.")
	}
}

func printRecommendations(out io.Writer, recs []recommend.Recommendation) {
	for _, rec := range recs {
		fmt.Fprintf(out, "\n%s (%s)\n%s\n\n%s\n", rec.Category, rec.Maturity, strings.Repeat("─", 44), rec.Text)
	}
}

func recordSubmission(ctx context.Context, st *store.Store, sub session.Submission) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return st.EventRepo().AppendSubmission(ctx, store.SubmissionEventData{
		ID:              sub.ID,
		Overall:         sub.Result.Overall,
		OverallMaturity: string(sub.Result.OverallMaturity),
		HasNotStarted:   sub.Result.HasNotStarted,
		Payload:         string(payload),
	})
}

