package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift not found")
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrPositionNotFound   = errors.New("employee position not found")

	// ErrResolutionAmbiguous is not a hard failure: callers degrade to
	// basic-mode computation and flag the record for manual review.
	ErrResolutionAmbiguous = errors.New("shift resolution is ambiguous")
)
