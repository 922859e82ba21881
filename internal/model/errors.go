package model

import "fmt"

// ValidationError reports a malformed or non-HTTP(S) URL on add/edit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an operation targeting a bookmark ID that is no
// longer present.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("bookmark %s not found", e.ID)
}

// PersistenceError reports a failed storage write. The in-memory state is
// retained; it is simply not durable until a future successful write.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist bookmarks: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// FormatError reports a corrupt persisted document or a malformed import
// file. Imports failing shape validation are rejected as a whole.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid document format: %s", e.Reason)
}
