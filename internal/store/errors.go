package store

import (
	"errors"
	"fmt"
)

// ConstraintError reports that a secondary-index lookup found more
// than one entity for a logical key that must identify at most one.
//
// This must not occur when the reconciliation layer is the only
// writer; it indicates either a reconciliation bug or a backup import
// whose primary identifiers collided with different logical rows.
// Callers treat it as fatal/unexpected rather than recoverable.
type ConstraintError struct {
	// Collection is the affected table ("records" or "cases").
	Collection string

	// Index names the violated secondary index.
	Index string

	// Key is the logical key that matched multiple rows.
	Key []string

	// Matches is the number of rows found (always >= 2).
	Matches int
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	return fmt.Sprintf("constraint violation: %s.%s has %d rows for key %v",
		e.Collection, e.Index, e.Matches, e.Key)
}

// IsConstraintViolation returns true if the error is a ConstraintError.
// Uses errors.As to handle wrapped errors.
func IsConstraintViolation(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce)
}
