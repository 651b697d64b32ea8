package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"ailit/internal/config"
	"ailit/internal/scoring"
	"ailit/internal/session"
	"ailit/internal/store"
	"ailit/internal/survey"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score the saved assessment without generating recommendations",
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
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

		ctx := cmd.Context()
		sess := session.New(catalog)
		resumed, err := sess.Resume(ctx, st.ProgressRepo())
		if err != nil {
			return err
		}
		if !resumed || sess.Answers().AnsweredCount() == 0 {
			return fmt.Errorf("no saved assessment to score; run the assessment first")
		}

		snap := sess.Answers().Freeze()
		result := scoring.Score(snap, catalog)

		out := cmd.OutOrStdout()
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		printResults(out, catalog, session.Submission{Snapshot: snap, Result: result})
		fmt.Fprintf(out, "\n%d of %d questions answered.\n", sess.Answers().AnsweredCount(), len(catalog.Questions))
		return nil
	},
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the full scoring result as JSON")
}
