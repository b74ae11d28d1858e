package ports

import (
	"context"

	"storyaudit/internal/domain"
)

// RunHistory stores finished validation runs
type RunHistory interface {
	// Record persists a finished run
	Record(ctx context.Context, run *domain.RunRecord) error

	// List returns the most recent runs first, at most limit (0 = no limit)
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns a run by ID, or nil when it does not exist
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// IssueTrend returns the per-run count of issues of type t over the
	// latest runs of repoPath, oldest first
	IssueTrend(ctx context.Context, repoPath string, t domain.IssueType, runs int) ([]int, error)

	Close() error
}
