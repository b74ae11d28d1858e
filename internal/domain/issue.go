package domain

// IssueType is the closed set of finding kinds the validator can emit
type IssueType string

const (
	IssueFileError                     IssueType = "file_error"
	IssueMissingSections               IssueType = "missing_sections"
	IssueLowCitations                  IssueType = "low_citations"
	IssueInsufficientContent           IssueType = "insufficient_content"
	IssueInsufficientAcademicStructure IssueType = "insufficient_academic_structure"
	IssueCountMismatch                 IssueType = "count_mismatch"
	IssueStatisticsMismatch            IssueType = "statistics_mismatch"
	IssueNumberingGaps                 IssueType = "numbering_gaps"
)

// IssueTypes lists every valid IssueType in declaration order
var IssueTypes = []IssueType{
	IssueFileError,
	IssueMissingSections,
	IssueLowCitations,
	IssueInsufficientContent,
	IssueInsufficientAcademicStructure,
	IssueCountMismatch,
	IssueStatisticsMismatch,
	IssueNumberingGaps,
}

// FileCrossValidation labels issues that span several documents
const FileCrossValidation = "cross_file_validation"

// IsValid reports whether t belongs to the closed set
func (t IssueType) IsValid() bool {
	for _, known := range IssueTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseIssueType converts a raw string into an IssueType, reporting whether
// it is one of the known kinds
func ParseIssueType(s string) (IssueType, bool) {
	t := IssueType(s)
	return t, t.IsValid()
}

// Issue is one finding about a document or a cross-document relation
type Issue struct {
	File    string    `json:"file"`
	Type    IssueType `json:"type"`
	Message string    `json:"message"`
}

// IssueCount is one row of an issue-type histogram
type IssueCount struct {
	Type  IssueType
	Count int
}

// CountByType returns a histogram of issue types in first-seen order
func CountByType(issues []Issue) []IssueCount {
	var counts []IssueCount
	index := make(map[IssueType]int)

	for _, issue := range issues {
		if i, ok := index[issue.Type]; ok {
			counts[i].Count++
			continue
		}
		index[issue.Type] = len(counts)
		counts = append(counts, IssueCount{Type: issue.Type, Count: 1})
	}

	return counts
}

// FilterByType returns the issues of the given type, or all issues when t is empty
func FilterByType(issues []Issue, t IssueType) []Issue {
	if t == "" {
		return issues
	}
	var out []Issue
	for _, issue := range issues {
		if issue.Type == t {
			out = append(out, issue)
		}
	}
	return out
}
