package store

import "fmt"

// Error represents a persistence backend failure for a key.
type Error struct {
	Key     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("store error for %q: %s: %v", e.Key, e.Message, e.Cause)
	}
	return fmt.Sprintf("store error for %q: %s", e.Key, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
