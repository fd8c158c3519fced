// Package crawling extracts assignment entries from course pages and
// aggregates them per category with global de-duplication.
package crawling

import (
	"errors"
	"fmt"
)

// ErrNoCourses is returned when a category has nothing to load.
var ErrNoCourses = errors.New("category has no courses")

// LoadError represents a failure of a whole category load
type LoadError struct {
	CategoryID string
	Message    string
	Cause      error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error for category %s: %s: %v", e.CategoryID, e.Message, e.Cause)
	}
	return fmt.Sprintf("load error for category %s: %s", e.CategoryID, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ExtractionError represents a failure in extracting assignments from HTML
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
