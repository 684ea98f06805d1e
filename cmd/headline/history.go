package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nao1215/headline/internal/config"
	"github.com/nao1215/headline/internal/database"
	"github.com/nao1215/headline/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or re-render past runs",
		Long: `History lists runs recorded in the local database, newest first.

A stored run can be re-rendered in any report format with --run.

Examples:
  # List the last 20 runs
  headline history

  # Show the last 50 runs
  headline history --limit 50

  # Re-render run 12 as Markdown
  headline history --run 12 --markdown`,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")
	cmd.Flags().Int64("run", 0, "Re-render the run with the given ID")
	cmd.Flags().BoolP("json", "j", false, "Render as JSON (with --run)")
	cmd.Flags().BoolP("markdown", "m", false, "Render as Markdown (with --run)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	db, err := database.Open(config.XDGDataDir(), database.Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	})
	if err != nil {
		return fmt.Errorf("no run history yet: %w", err)
	}
	defer db.Close()

	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}
	if runID > 0 {
		return renderRun(cmd, db, runID)
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	summaries, err := db.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSECTION\tSTATE\tARTICLES\tTOP WORDS")
	for _, s := range summaries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			s.StartedAt.Format("2006-01-02 15:04"),
			s.SectionURL,
			s.State,
			s.ArticleCount,
			s.TopWords,
		)
	}
	return w.Flush()
}

// renderRun re-renders one stored run in the requested format.
func renderRun(cmd *cobra.Command, db *database.RunDB, id int64) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return config.ErrConflictingReportFormats
	}

	stored, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	output := cmd.OutOrStdout()
	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewSimpleWriter(output, report.WithVerbose(getVerboseFlag(cmd)))
	}

	if _, err := writer.Write(stored); err != nil {
		return fmt.Errorf("failed to render run %d: %w", id, err)
	}
	return nil
}
