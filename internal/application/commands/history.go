package commands

import (
	"context"
	"fmt"

	"storyaudit/internal/application"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// ListRunsCommand lists recorded validation runs, newest first
type ListRunsCommand struct {
	history ports.RunHistory
	Limit   int
}

// NewListRunsCommand creates a new ListRunsCommand
func NewListRunsCommand(history ports.RunHistory, limit int) *ListRunsCommand {
	return &ListRunsCommand{
		history: history,
		Limit:   limit,
	}
}

// Validate checks the limit is usable
func (c *ListRunsCommand) Validate() error {
	return application.ValidateLimit("limit", c.Limit)
}

// Execute returns at most Limit runs
func (c *ListRunsCommand) Execute(ctx context.Context) ([]domain.RunRecord, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	runs, err := c.history.List(ctx, c.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// ShowRunCommand loads the report stored with a recorded run
type ShowRunCommand struct {
	history ports.RunHistory
	RunID   string
}

// NewShowRunCommand creates a new ShowRunCommand
func NewShowRunCommand(history ports.RunHistory, runID string) *ShowRunCommand {
	return &ShowRunCommand{
		history: history,
		RunID:   runID,
	}
}

// Execute returns the run and its decoded report
func (c *ShowRunCommand) Execute(ctx context.Context) (*domain.RunRecord, *domain.Accumulator, error) {
	if err := application.ValidateRequired("runID", c.RunID); err != nil {
		return nil, nil, err
	}

	run, err := c.history.Get(ctx, c.RunID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load run %s: %w", c.RunID, err)
	}
	if run == nil {
		return nil, nil, fmt.Errorf("run %s: %w", c.RunID, application.ErrReportNotFound)
	}

	acc, err := DecodeReport(run.Report)
	if err != nil {
		return nil, nil, err
	}
	return run, acc, nil
}

// IssueTrendCommand reports how often one issue type appeared across the
// latest runs of a repository
type IssueTrendCommand struct {
	history   ports.RunHistory
	RepoPath  string
	IssueType string
	Runs      int
}

// NewIssueTrendCommand creates a new IssueTrendCommand
func NewIssueTrendCommand(history ports.RunHistory, repoPath, issueType string, runs int) *IssueTrendCommand {
	return &IssueTrendCommand{
		history:   history,
		RepoPath:  repoPath,
		IssueType: issueType,
		Runs:      runs,
	}
}

// Validate checks every field is set and the issue type is known
func (c *IssueTrendCommand) Validate() error {
	if err := application.ValidateRequired("repoPath", c.RepoPath); err != nil {
		return err
	}
	if err := application.ValidateRequired("issueType", c.IssueType); err != nil {
		return err
	}
	if err := application.ValidateIssueType("issueType", c.IssueType); err != nil {
		return err
	}
	return application.ValidateLimit("runs", c.Runs)
}

// Execute returns the per-run counts, oldest first
func (c *IssueTrendCommand) Execute(ctx context.Context) ([]int, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	counts, err := c.history.IssueTrend(ctx, c.RepoPath, domain.IssueType(c.IssueType), c.Runs)
	if err != nil {
		return nil, fmt.Errorf("failed to load trend: %w", err)
	}
	return counts, nil
}
