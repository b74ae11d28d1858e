package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrRootNotFound   = errors.New("repository root not accessible")
	ErrReportWrite    = errors.New("cannot write validation report")
	ErrReportNotFound = errors.New("validation report not found")
	ErrIssuesFound    = errors.New("validation found issues")
	ErrInvariant      = errors.New("internal invariant violated")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RootError reports a repository root that cannot be traversed
type RootError struct {
	Path string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("cannot traverse %s: %v", e.Path, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

func (e *RootError) Is(target error) bool {
	return target == ErrRootNotFound
}

// ReportError reports a validation report that could not be written
type ReportError struct {
	Path string
	Err  error
}

func (e *ReportError) Error() string {
	return fmt.Sprintf("cannot write report %s: %v", e.Path, e.Err)
}

func (e *ReportError) Unwrap() error {
	return e.Err
}

func (e *ReportError) Is(target error) bool {
	return target == ErrReportWrite
}
