package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"storyaudit/internal/domain"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()

	h, err := OpenHistory(filepath.Join(t.TempDir(), "nested", "history.db"))
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("failed to close history: %v", err)
		}
	})
	return h
}

func testRun(id, repo string, started time.Time, issues ...domain.Issue) *domain.RunRecord {
	return &domain.RunRecord{
		ID:             id,
		RepoPath:       repo,
		StartedAt:      started,
		Duration:       1500 * time.Millisecond,
		FilesChecked:   4,
		TotalWordCount: 1234,
		IssueCount:     len(issues),
		Scores: domain.Scores{
			Overall:              90,
			ContentCompleteness:  1.2,
			StructureConsistency: 100,
			CrossFileConsistency: 95,
		},
		Issues: issues,
		Report: []byte(`{"files_checked": 4}`),
	}
}

func TestHistory_RecordAndGet(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	issues := []domain.Issue{
		{File: "a.md", Type: domain.IssueFileError, Message: "Error reading file: boom"},
		{File: "cross_file_validation", Type: domain.IssueStatisticsMismatch, Message: "Word count mismatch"},
	}
	want := testRun("run-1", "/repo", started, issues...)
	if err := h.Record(ctx, want); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	got, err := h.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() mismatch (-want +got):\n%s", diff)
	}

	missing, err := h.Get(ctx, "nope")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for unknown run, got %v, %v", missing, err)
	}
}

func TestHistory_RecordDuplicateIDFails(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	run := testRun("dup", "/repo", time.Unix(0, 0).UTC(), domain.Issue{File: "a.md", Type: domain.IssueFileError})

	if err := h.Record(ctx, run); err != nil {
		t.Fatalf("first Record failed: %v", err)
	}
	if err := h.Record(ctx, run); err == nil {
		t.Fatal("expected error recording a duplicate run ID")
	}

	got, err := h.Get(ctx, "dup")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(got.Issues) != 1 {
		t.Errorf("failed record must not add issues, got %d", len(got.Issues))
	}
}

func TestHistory_ListNewestFirst(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		if err := h.Record(ctx, testRun(id, "/repo", base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("Record(%s) failed: %v", id, err)
		}
	}

	runs, err := h.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var ids []string
	for _, run := range runs {
		ids = append(ids, run.ID)
		if run.Issues != nil {
			t.Errorf("List should not load issues for %s", run.ID)
		}
	}
	if diff := cmp.Diff([]string{"third", "second"}, ids); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	all, err := h.List(ctx, 0)
	if err != nil {
		t.Fatalf("List(0) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(0) should return every run, got %d", len(all))
	}
}

func TestHistory_IssueTrend(t *testing.T) {
	h := openTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	gap := domain.Issue{File: "master_storytellers/", Type: domain.IssueNumberingGaps, Message: "Expected [1, 2], found [1, 3]"}
	other := domain.Issue{File: "a.md", Type: domain.IssueFileError, Message: "x"}

	runs := []*domain.RunRecord{
		testRun("r1", "/repo", base, gap),
		testRun("r2", "/repo", base.Add(time.Hour), other),
		testRun("r3", "/elsewhere", base.Add(2*time.Hour), gap, gap),
		testRun("r4", "/repo", base.Add(3*time.Hour), gap, other),
	}
	for _, run := range runs {
		if err := h.Record(ctx, run); err != nil {
			t.Fatalf("Record(%s) failed: %v", run.ID, err)
		}
	}

	got, err := h.IssueTrend(ctx, "/repo", domain.IssueNumberingGaps, 10)
	if err != nil {
		t.Fatalf("IssueTrend failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 0, 1}, got); diff != "" {
		t.Errorf("IssueTrend() mismatch (-want +got):\n%s", diff)
	}

	latest, err := h.IssueTrend(ctx, "/repo", domain.IssueNumberingGaps, 2)
	if err != nil {
		t.Fatalf("IssueTrend failed: %v", err)
	}
	if diff := cmp.Diff([]int{0, 1}, latest); diff != "" {
		t.Errorf("IssueTrend(limit 2) mismatch (-want +got):\n%s", diff)
	}
}
