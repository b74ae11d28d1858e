package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"storyaudit/internal/domain"
	"storyaudit/internal/ports"
)

const schemaVersion = "1"

// History implements ports.RunHistory using SQLite
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements RunHistory
var _ ports.RunHistory = (*History)(nil)

// OpenHistory opens (creating if needed) the run history database at dbPath
func OpenHistory(dbPath string) (*History, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases shared across queries
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			repo_path TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			files_checked INTEGER NOT NULL,
			total_word_count INTEGER NOT NULL,
			issue_count INTEGER NOT NULL,
			overall REAL NOT NULL,
			content_completeness REAL NOT NULL,
			structure_consistency REAL NOT NULL,
			cross_file_consistency REAL NOT NULL,
			report BLOB NOT NULL
		);
		CREATE TABLE IF NOT EXISTS issues (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			file TEXT NOT NULL,
			type TEXT NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
		CREATE INDEX IF NOT EXISTS idx_issues_type ON issues(type);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &History{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path
func (h *History) Path() string {
	return h.dbPath
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record stores a run and its issues in one transaction
func (h *History) Record(ctx context.Context, run *domain.RunRecord) (err error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, repo_path, started_at, duration_ns, files_checked, total_word_count,
			issue_count, overall, content_completeness, structure_consistency,
			cross_file_consistency, report
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.RepoPath, run.StartedAt.UnixNano(), int64(run.Duration),
		run.FilesChecked, run.TotalWordCount, run.IssueCount,
		float64(run.Scores.Overall), float64(run.Scores.ContentCompleteness),
		float64(run.Scores.StructureConsistency), float64(run.Scores.CrossFileConsistency),
		run.Report,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO issues (run_id, seq, file, type, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare issue insert: %w", err)
	}
	defer stmt.Close()

	for i, issue := range run.Issues {
		if _, err = stmt.ExecContext(ctx, run.ID, i, issue.File, string(issue.Type), issue.Message); err != nil {
			return fmt.Errorf("failed to insert issue: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

const runColumns = `id, repo_path, started_at, duration_ns, files_checked, total_word_count,
	issue_count, overall, content_completeness, structure_consistency,
	cross_file_consistency, report`

// List returns at most limit runs (all when limit <= 0), newest first.
// Issues are not loaded.
func (h *History) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY started_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Get returns the run with its issues, or nil when id is unknown
func (h *History) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := h.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := h.db.QueryContext(ctx, `SELECT file, type, message FROM issues WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query issues: %w", err)
	}
	defer rows.Close()

	run.Issues = []domain.Issue{}
	for rows.Next() {
		var issue domain.Issue
		var issueType string
		if err := rows.Scan(&issue.File, &issueType, &issue.Message); err != nil {
			return nil, fmt.Errorf("failed to scan issue: %w", err)
		}
		issue.Type = domain.IssueType(issueType)
		run.Issues = append(run.Issues, issue)
	}
	return run, rows.Err()
}

// IssueTrend returns, for the most recent runs of repoPath, the number of
// issues of type t per run, oldest first
func (h *History) IssueTrend(ctx context.Context, repoPath string, t domain.IssueType, runs int) ([]int, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT n FROM (
			SELECT r.started_at, COUNT(i.seq) AS n
			FROM runs r
			LEFT JOIN issues i ON i.run_id = r.id AND i.type = ?
			WHERE r.repo_path = ?
			GROUP BY r.id
			ORDER BY r.started_at DESC
			LIMIT ?
		) ORDER BY started_at
	`, string(t), repoPath, runs)
	if err != nil {
		return nil, fmt.Errorf("failed to query trend: %w", err)
	}
	defer rows.Close()

	var counts []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*domain.RunRecord, error) {
	var (
		run        domain.RunRecord
		startedAt  int64
		durationNS int64
		scores     [4]float64
	)
	err := s.Scan(
		&run.ID, &run.RepoPath, &startedAt, &durationNS,
		&run.FilesChecked, &run.TotalWordCount, &run.IssueCount,
		&scores[0], &scores[1], &scores[2], &scores[3],
		&run.Report,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	run.StartedAt = time.Unix(0, startedAt).UTC()
	run.Duration = time.Duration(durationNS)
	run.Scores = domain.Scores{
		Overall:              domain.Score(scores[0]),
		ContentCompleteness:  domain.Score(scores[1]),
		StructureConsistency: domain.Score(scores[2]),
		CrossFileConsistency: domain.Score(scores[3]),
	}
	return &run, nil
}
