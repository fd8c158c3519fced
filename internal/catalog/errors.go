package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a category id is not in the catalog.
var ErrUnknownCategory = errors.New("unknown category")

// Error represents a catalog lookup or loading failure
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	prefix := "catalog error"
	if e.Path != "" {
		prefix = fmt.Sprintf("catalog error in %s", e.Path)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
