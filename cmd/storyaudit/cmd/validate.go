package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"storyaudit/internal/adapters/report"
	"storyaudit/internal/adapters/sqlite"
	"storyaudit/internal/application"
	"storyaudit/internal/application/commands"
	"storyaudit/internal/config"
)

var (
	record       bool
	failOnIssues bool
	quiet        bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the repository and write validation_report.json",
	Long: `Validate every Markdown document under the repository root.

The summary is printed to standard output and the full report is written
to validation_report.json at the repository root.

Examples:
  storyaudit validate
  storyaudit validate --repo ~/src/story-engine --record
  storyaudit validate --rules ./rules.yaml --fail-on-issues`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

func addValidateFlags(c *cobra.Command) {
	c.Flags().BoolVar(&record, "record", false, "record the run in the history database")
	c.Flags().BoolVar(&failOnIssues, "fail-on-issues", false, "exit non-zero when any issue is found")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the summary")
}

func runValidate(cmd *cobra.Command) error {
	repo := GetRepo()
	opts := []commands.ValidateOption{commands.WithLogger(logger)}

	if record {
		history, err := sqlite.OpenHistory(config.HistoryPath())
		if err != nil {
			return err
		}
		defer history.Close()
		opts = append(opts, commands.WithHistory(history))
	}

	result, err := commands.NewValidateCommand(repo, rules, opts...).Execute(cmd.Context())
	if err != nil {
		return err
	}

	if !quiet {
		report.NewPrinter(cmd.OutOrStdout()).Print(result.Accumulator, filepath.Join(result.Root, result.ReportPath))
		if record {
			fmt.Fprintf(cmd.OutOrStdout(), "🗂  Run recorded as %s\n", result.RunID)
		}
	}

	if failOnIssues && result.HasIssues() {
		return fmt.Errorf("%d issue(s): %w", len(result.Accumulator.IssuesFound), application.ErrIssuesFound)
	}
	return nil
}

func init() {
	addValidateFlags(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
