package domain

import "time"

// ReportFileName is the report written at the root of the audited repository
const ReportFileName = "validation_report.json"

// RunRecord is a finished validation run kept in the run history
type RunRecord struct {
	ID             string
	RepoPath       string
	StartedAt      time.Time
	Duration       time.Duration
	FilesChecked   int
	TotalWordCount int
	IssueCount     int
	Scores         Scores
	Issues         []Issue
	Report         []byte // the JSON report as written to disk
}

// NewRunRecord summarizes a finalized accumulator
func NewRunRecord(id, repoPath string, startedAt time.Time, duration time.Duration, acc *Accumulator, report []byte) *RunRecord {
	return &RunRecord{
		ID:             id,
		RepoPath:       repoPath,
		StartedAt:      startedAt,
		Duration:       duration,
		FilesChecked:   acc.FilesChecked,
		TotalWordCount: acc.TotalWordCount,
		IssueCount:     len(acc.IssuesFound),
		Scores: Scores{
			Overall:              acc.Score(AspectOverall),
			ContentCompleteness:  acc.Score(AspectContentCompleteness),
			StructureConsistency: acc.Score(AspectStructureConsistency),
			CrossFileConsistency: acc.Score(AspectCrossFileConsistency),
		},
		Issues: acc.IssuesFound,
		Report: report,
	}
}
