package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"storyaudit/internal/application"
	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

// LoadReportCommand reads the last report written at a repository root
type LoadReportCommand struct {
	repo ports.ContentRepository
}

// NewLoadReportCommand creates a new LoadReportCommand
func NewLoadReportCommand(repo ports.ContentRepository) *LoadReportCommand {
	return &LoadReportCommand{repo: repo}
}

// Execute decodes the report, returning ErrReportNotFound when absent
func (c *LoadReportCommand) Execute() (*domain.Accumulator, error) {
	data, err := c.repo.ReadDocument(domain.ReportFileName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", c.repo.Root(), application.ErrReportNotFound)
		}
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return DecodeReport([]byte(data))
}
