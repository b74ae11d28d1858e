package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"storyaudit/internal/adapters/filesystem"
	"storyaudit/internal/config"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

var (
	repoPath  string
	rulesPath string
	verbose   bool

	logger  *zap.Logger
	ruleSet *config.RuleSet
	rules   *domain.Rules
)

var rootCmd = &cobra.Command{
	Use:   "storyaudit",
	Short: "Audit a storytelling research repository",
	Long: `storyaudit audits the Markdown documentation of a storytelling research
repository: storyteller profiles, README indexes and research modules.

It reports missing sections, thin content and cross-file inconsistencies,
scores the repository and writes validation_report.json at its root.

Run without a subcommand to validate the repository.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		if logger, err = newLogger(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		if ruleSet, err = config.LoadRuleSet(rulesPath); err != nil {
			return err
		}
		if rules, err = ruleSet.Compile(); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd)
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoPath, "repo", "r", config.RepoPath(), "path to the repository to audit")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML or TOML rule file overriding the built-in rules")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	addValidateFlags(rootCmd)
}

// newLogger builds a production logger writing to stderr. The level comes
// from STORYAUDIT_LOG_LEVEL unless --verbose is set.
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	level, err := zapcore.ParseLevel(config.LogLevel())
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	return cfg.Build()
}

// GetRepo returns a repository for the --repo flag
func GetRepo() ports.ContentRepository {
	return filesystem.NewRepository(repoPath)
}
