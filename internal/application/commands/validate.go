package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storyaudit/internal/application"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// ValidateResult contains the outcome of a validation run
type ValidateResult struct {
	RunID       string
	Root        string
	Accumulator *domain.Accumulator
	Report      []byte
	ReportPath  string
	Duration    time.Duration
}

// HasIssues reports whether the run found any issue
func (r *ValidateResult) HasIssues() bool {
	return len(r.Accumulator.IssuesFound) > 0
}

// ValidateCommand audits every Markdown document of a repository and writes
// the JSON report at its root
type ValidateCommand struct {
	repo    ports.ContentRepository
	rules   *domain.Rules
	logger  *zap.Logger
	history ports.RunHistory
	now     func() time.Time
}

// ValidateOption configures a ValidateCommand
type ValidateOption func(*ValidateCommand)

// WithLogger sets the logger used for progress and warnings
func WithLogger(logger *zap.Logger) ValidateOption {
	return func(c *ValidateCommand) {
		c.logger = logger
	}
}

// WithHistory records every completed run in history
func WithHistory(history ports.RunHistory) ValidateOption {
	return func(c *ValidateCommand) {
		c.history = history
	}
}

// WithClock overrides the clock used to time runs
func WithClock(now func() time.Time) ValidateOption {
	return func(c *ValidateCommand) {
		c.now = now
	}
}

// NewValidateCommand creates a new ValidateCommand
func NewValidateCommand(repo ports.ContentRepository, rules *domain.Rules, opts ...ValidateOption) *ValidateCommand {
	c := &ValidateCommand{
		repo:   repo,
		rules:  rules,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Validate checks the command is fully configured
func (c *ValidateCommand) Validate() error {
	if c.repo == nil {
		return &application.ValidationError{Field: "repoPath", Message: "repository is required"}
	}
	if err := application.ValidateRequired("repoPath", c.repo.Root()); err != nil {
		return err
	}
	if c.rules == nil {
		return &application.ValidationError{Field: "rulesPath", Message: "rules are required"}
	}
	return nil
}

// Execute runs traversal, per-document validation, cross-document audits
// and scoring, then writes the report
func (c *ValidateCommand) Execute(ctx context.Context) (*ValidateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	root := c.repo.Root()
	started := c.now()
	log := c.logger.With(zap.String("root", root))

	if err := c.repo.Check(); err != nil {
		return nil, &application.RootError{Path: root, Err: err}
	}

	log.Info("starting validation")

	acc := domain.NewAccumulator()
	v := newValidator(c.repo, c.rules, log, acc)

	if err := c.repo.WalkMarkdown(ctx, v.visit); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &application.RootError{Path: root, Err: err}
	}

	v.crossCheck()

	scores := domain.ComputeScores(acc.IssuesFound, acc.TotalWordCount, c.rules.ExpectedCorpusWords)
	if err := acc.Finalize(scores); err != nil {
		return nil, fmt.Errorf("%w: %v", application.ErrInvariant, err)
	}

	report, err := EncodeReport(acc)
	if err != nil {
		return nil, err
	}
	if err := c.repo.WriteFile(domain.ReportFileName, report); err != nil {
		return nil, &application.ReportError{Path: domain.ReportFileName, Err: err}
	}

	result := &ValidateResult{
		RunID:       uuid.NewString(),
		Root:        root,
		Accumulator: acc,
		Report:      report,
		ReportPath:  domain.ReportFileName,
		Duration:    c.now().Sub(started),
	}

	log.Info("validation complete",
		zap.String("run_id", result.RunID),
		zap.Int("files_checked", acc.FilesChecked),
		zap.Int("total_word_count", acc.TotalWordCount),
		zap.Int("issues", len(acc.IssuesFound)),
		zap.Stringer("overall", acc.Score(domain.AspectOverall)),
		zap.Duration("duration", result.Duration),
	)

	if c.history != nil {
		record := domain.NewRunRecord(result.RunID, root, started, result.Duration, acc, report)
		if err := c.history.Record(ctx, record); err != nil {
			log.Warn("failed to record run", zap.String("run_id", result.RunID), zap.Error(err))
		}
	}

	return result, nil
}
