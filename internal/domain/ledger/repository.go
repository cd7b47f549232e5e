package ledger

import (
	"context"
	"time"
)

// Repository defines data access for the daily ledger.
// All methods include companyID to prevent cross-company data access.
type Repository interface {
	// Upsert creates or replaces the row for (employee, work date)
	Upsert(ctx context.Context, row MonthlyShift) (MonthlyShift, error)

	// GetByEmployeeAndDate retrieves the row for (employee, work date),
	// returning ErrLedgerNotFound when absent
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (MonthlyShift, error)

	// ListByDateRange retrieves rows for an employee inside
	// [startDate, endDate], ordered by work date
	ListByDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]MonthlyShift, error)
}

// Service is the read-model contract: the daily ledger row and the
// monthly aggregation with smart offsetting applied.
type Service interface {
	GetDailyLedger(ctx context.Context, req DailyLedgerRequest) (DailyResponse, error)
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (SummaryResponse, error)
}
