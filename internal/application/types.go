package application

import "storyaudit/internal/domain"

// Re-export domain types for use by adapters
type (
	Issue       = domain.Issue
	IssueType   = domain.IssueType
	IssueCount  = domain.IssueCount
	Accumulator = domain.Accumulator
	RunRecord   = domain.RunRecord
	Scores      = domain.Scores
	Score       = domain.Score
)

// CountByType returns a histogram of issue types in first-seen order
func CountByType(issues []Issue) []IssueCount {
	return domain.CountByType(issues)
}

// FilterByType returns the issues of the given type, or all issues when t is empty
func FilterByType(issues []Issue, t IssueType) []Issue {
	return domain.FilterByType(issues, t)
}
