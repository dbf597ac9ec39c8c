package domain

import (
	"errors"
	"fmt"
)

// ErrValidation covers malformed or missing required input: unparseable
// required dates, non-positive principal, zero term. Not recoverable within
// the call.
var ErrValidation = errors.New("validation error")

// ErrDataUnavailable means a required reference table (risk curves, school
// directory) has not been loaded yet. Callers should defer computation until
// the boundary load completes.
var ErrDataUnavailable = errors.New("reference data not loaded")

func ValidationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
