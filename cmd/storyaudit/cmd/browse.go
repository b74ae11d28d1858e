package cmd

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"storyaudit/internal/adapters/editor"
	"storyaudit/internal/adapters/tui"
	"storyaudit/internal/application"
	"storyaudit/internal/application/commands"
	"storyaudit/internal/domain"
)

var runFirst bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the issues of the last validation report",
	Long: `Open an interactive browser over validation_report.json.

Issues can be filtered by type, their path copied to the clipboard, or the
flagged file opened in $EDITOR.

Examples:
  storyaudit browse
  storyaudit browse --run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := GetRepo()

		var acc *domain.Accumulator
		if runFirst {
			result, err := commands.NewValidateCommand(repo, rules, commands.WithLogger(logger)).Execute(cmd.Context())
			if err != nil {
				return err
			}
			acc = result.Accumulator
		} else {
			var err error
			acc, err = commands.NewLoadReportCommand(repo).Execute()
			if errors.Is(err, application.ErrReportNotFound) {
				return fmt.Errorf("%w (run 'storyaudit validate' or use --run)", err)
			}
			if err != nil {
				return err
			}
		}

		app := tui.NewApp(repo.Root(), acc, rules, editor.NewOpener())
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("browser failed: %w", err)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().BoolVar(&runFirst, "run", false, "validate the repository before browsing")
	rootCmd.AddCommand(browseCmd)
}
