package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records and their break
// sessions. All methods include companyID to prevent cross-company data
// access.
type Repository interface {
	// Create creates a new attendance record. The storage layer enforces
	// the single-open-session invariant: a second open record for the
	// same employee fails with ErrAlreadyCheckedIn regardless of how
	// many service instances race.
	Create(ctx context.Context, record Record) (Record, error)

	// GetOpenSession retrieves the employee's open record with its break
	// sessions, returning ErrNoOpenSession when none exists
	GetOpenSession(ctx context.Context, employeeID string, companyID string) (Record, error)

	// GetByEmployeeAndDate retrieves the record for (employee, work date)
	// with its break sessions, returning ErrRecordNotFound when absent
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (Record, error)

	// ListByDateRange retrieves all records for an employee inside
	// [startDate, endDate], break sessions included, ordered by work date
	ListByDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]Record, error)

	// Close stamps the check-out time on an open record
	Close(ctx context.Context, recordID string, checkOutTime time.Time, companyID string) error

	// GetStaleOpenSessions retrieves open records whose work date is more
	// than cutoffDays behind, for the auto-close job
	GetStaleOpenSessions(ctx context.Context, cutoffDays int) ([]Record, error)

	// StartBreak opens a break session on a record. Exactly one of two
	// concurrent attempts wins; the loser gets ErrBreakAlreadyOpen.
	StartBreak(ctx context.Context, session BreakSession) (BreakSession, error)

	// StopBreak closes the open break session on a record, returning
	// ErrNoBreakOpen when there is none
	StopBreak(ctx context.Context, recordID string, endTime time.Time) (BreakSession, error)
}
