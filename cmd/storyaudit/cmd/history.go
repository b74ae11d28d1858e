package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"storyaudit/internal/adapters/report"
	"storyaudit/internal/adapters/sqlite"
	"storyaudit/internal/application/commands"
	"storyaudit/internal/config"
)

var (
	historyLimit int
	trendType    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded validation runs",
	Long: `List validation runs recorded with --record, newest first.

Examples:
  storyaudit history
  storyaudit history --limit 5
  storyaudit history --trend missing_sections
  storyaudit history show <run-id>`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := sqlite.OpenHistory(config.HistoryPath())
		if err != nil {
			return err
		}
		defer history.Close()

		if trendType != "" {
			trendCmd := commands.NewIssueTrendCommand(history, GetRepo().Root(), trendType, historyLimit)
			counts, err := trendCmd.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded for this repository.")
				return nil
			}
			parts := make([]string, len(counts))
			for i, n := range counts {
				parts[i] = fmt.Sprint(n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (oldest → newest): %s\n", trendType, strings.Join(parts, " → "))
			return nil
		}

		runs, err := commands.NewListRunsCommand(history, historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("RUN", "STARTED", "FILES", "WORDS", "ISSUES", "OVERALL", "REPOSITORY")
		for _, run := range runs {
			t.Row(
				run.ID,
				humanize.Time(run.StartedAt),
				fmt.Sprint(run.FilesChecked),
				humanize.Comma(int64(run.TotalWordCount)),
				fmt.Sprint(run.IssueCount),
				run.Scores.Overall.String(),
				run.RepoPath,
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the summary of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := sqlite.OpenHistory(config.HistoryPath())
		if err != nil {
			return err
		}
		defer history.Close()

		run, acc, err := commands.NewShowRunCommand(history, args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Run %s on %s (%s, took %s)\n",
			run.ID, run.RepoPath, run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Duration)
		report.NewPrinter(cmd.OutOrStdout()).Print(acc, "")
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs")
	historyCmd.Flags().StringVar(&trendType, "trend", "", "show how often an issue type appeared per run")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
