package logbook

import (
	"errors"
	"fmt"
)

// MissingKeyError reports a resolve or save attempted without a
// complete logical key (empty group or date for a Case, empty student
// or date for a Record). An empty group is not a valid partition, so
// the operation is refused instead of synthesizing a row under it.
//
// Recoverable: the caller prompts the user to supply the key.
type MissingKeyError struct {
	// Entity is "record" or "case".
	Entity string

	// Field names the missing key component.
	Field string
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("missing key: %s requires a non-empty %s", e.Entity, e.Field)
}

// IsMissingKey returns true if the error is a MissingKeyError.
// Uses errors.As to handle wrapped errors.
func IsMissingKey(err error) bool {
	var mk *MissingKeyError
	return errors.As(err, &mk)
}
