package attendance

import "errors"

// Attendance domain errors. State-machine violations are recoverable,
// user-actionable errors returned to the caller.
var (
	// Check-in errors
	ErrAlreadyCheckedIn   = errors.New("you have already checked in for this work day")
	ErrDayOff             = errors.New("today is your day off")
	ErrOutsideShiftWindow = errors.New("current time is outside your shift's check-in window")

	// Check-out / break errors
	ErrNoOpenSession    = errors.New("you have no open attendance session")
	ErrBreakAlreadyOpen = errors.New("a break is already in progress")
	ErrNoBreakOpen      = errors.New("no break is in progress")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
