package application

import (
	"fmt"
	"strings"

	"storyaudit/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "repoPath" -> "repository path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"repoPath":  "repository path",
		"rulesPath": "rules path",
		"issueType": "issue type",
		"runID":     "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateIssueType checks that value is empty or one of the known issue types
func ValidateIssueType(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if _, ok := domain.ParseIssueType(value); !ok {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("unknown %s: %s", formatFieldName(fieldName), value),
		}
	}
	return nil
}

// ValidateLimit checks that a result limit is positive
func ValidateLimit(fieldName string, limit int) error {
	if limit <= 0 {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s must be positive, got: %d", fieldName, limit),
		}
	}
	return nil
}
