package commands

import (
	"context"
	"errors"
	"testing"

	"storyaudit/internal/adapters/filesystem"
	"storyaudit/internal/application"
	"storyaudit/internal/domain"
)

// fakeHistory is an in-memory ports.RunHistory
type fakeHistory struct {
	runs []domain.RunRecord
	err  error
}

func (h *fakeHistory) Record(_ context.Context, run *domain.RunRecord) error {
	if h.err != nil {
		return h.err
	}
	h.runs = append(h.runs, *run)
	return nil
}

func (h *fakeHistory) List(_ context.Context, limit int) ([]domain.RunRecord, error) {
	if h.err != nil {
		return nil, h.err
	}
	var out []domain.RunRecord
	for i := len(h.runs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, h.runs[i])
	}
	return out, nil
}

func (h *fakeHistory) Get(_ context.Context, id string) (*domain.RunRecord, error) {
	if h.err != nil {
		return nil, h.err
	}
	for i := range h.runs {
		if h.runs[i].ID == id {
			return &h.runs[i], nil
		}
	}
	return nil, nil
}

func (h *fakeHistory) IssueTrend(_ context.Context, repoPath string, t domain.IssueType, runs int) ([]int, error) {
	var counts []int
	for _, run := range h.runs {
		if run.RepoPath != repoPath {
			continue
		}
		counts = append(counts, len(domain.FilterByType(run.Issues, t)))
	}
	if len(counts) > runs {
		counts = counts[len(counts)-runs:]
	}
	return counts, nil
}

func (h *fakeHistory) Close() error {
	return nil
}

func TestListRunsCommand(t *testing.T) {
	history := &fakeHistory{runs: []domain.RunRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}}

	runs, err := NewListRunsCommand(history, 2).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("expected newest two runs, got %+v", runs)
	}

	_, err = NewListRunsCommand(history, 0).Execute(context.Background())
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for zero limit, got %v", err)
	}
}

func TestShowRunCommand(t *testing.T) {
	root := setupRepo(t, map[string]string{"01_intro.md": "abstract"})
	history := &fakeHistory{}
	result := runValidate(t, root, WithHistory(history))

	run, acc, err := NewShowRunCommand(history, result.RunID).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if run.ID != result.RunID {
		t.Errorf("expected run %s, got %s", result.RunID, run.ID)
	}
	if len(acc.IssuesFound) != 1 || acc.IssuesFound[0].Type != domain.IssueInsufficientAcademicStructure {
		t.Errorf("unexpected decoded issues %v", acc.IssuesFound)
	}

	_, _, err = NewShowRunCommand(history, "missing").Execute(context.Background())
	if !errors.Is(err, application.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound, got %v", err)
	}

	_, _, err = NewShowRunCommand(history, " ").Execute(context.Background())
	var valErr *application.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("expected ValidationError for blank ID, got %v", err)
	}
}

func TestLoadReportCommand(t *testing.T) {
	root := setupRepo(t, map[string]string{"01_intro.md": "abstract"})
	repo := filesystem.NewRepository(root)

	if _, err := NewLoadReportCommand(repo).Execute(); !errors.Is(err, application.ErrReportNotFound) {
		t.Errorf("expected ErrReportNotFound before any run, got %v", err)
	}

	runValidate(t, root)

	acc, err := NewLoadReportCommand(repo).Execute()
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if acc.FilesChecked != 1 {
		t.Errorf("expected 1 file checked, got %d", acc.FilesChecked)
	}
	if got := acc.Score(domain.AspectOverall); got != 95 {
		t.Errorf("expected overall 95.0, got %v", got)
	}
}

func TestIssueTrendCommand(t *testing.T) {
	history := &fakeHistory{runs: []domain.RunRecord{
		{ID: "1", RepoPath: "/r", Issues: []domain.Issue{{Type: domain.IssueFileError}}},
		{ID: "2", RepoPath: "/other", Issues: []domain.Issue{{Type: domain.IssueFileError}}},
		{ID: "3", RepoPath: "/r"},
		{ID: "4", RepoPath: "/r", Issues: []domain.Issue{{Type: domain.IssueFileError}, {Type: domain.IssueFileError}}},
	}}

	got, err := NewIssueTrendCommand(history, "/r", "file_error", 10).Execute(context.Background())
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 0 || got[2] != 2 {
		t.Errorf("unexpected trend %v", got)
	}

	if _, err := NewIssueTrendCommand(history, "/r", "bogus", 10).Execute(context.Background()); err == nil {
		t.Error("expected error for unknown issue type")
	}
}
