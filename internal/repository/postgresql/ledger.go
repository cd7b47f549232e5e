package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
)

type ledgerRepository struct {
	db *database.DB
}

func NewLedgerRepository(db *database.DB) ledger.Repository {
	return &ledgerRepository{db: db}
}

const ledgerColumns = `id, employee_id, company_id, work_date, shift_id, check_in_time, check_out_time,
	regular_hours, overtime_hours, delay_minutes, early_checkout_penalty_hours,
	is_day_off, needs_review, created_at, updated_at`

// Upsert implements ledger.Repository. One row per (employee, work
// date); check-in writes a provisional row, checkout and recalculation
// replace the computed figures.
func (r *ledgerRepository) Upsert(ctx context.Context, row ledger.MonthlyShift) (ledger.MonthlyShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO monthly_shifts (
			employee_id, company_id, work_date, shift_id, check_in_time, check_out_time,
			regular_hours, overtime_hours, delay_minutes, early_checkout_penalty_hours,
			is_day_off, needs_review
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			shift_id                     = EXCLUDED.shift_id,
			check_in_time                = COALESCE(EXCLUDED.check_in_time, monthly_shifts.check_in_time),
			check_out_time               = EXCLUDED.check_out_time,
			regular_hours                = EXCLUDED.regular_hours,
			overtime_hours               = EXCLUDED.overtime_hours,
			delay_minutes                = EXCLUDED.delay_minutes,
			early_checkout_penalty_hours = EXCLUDED.early_checkout_penalty_hours,
			is_day_off                   = EXCLUDED.is_day_off,
			needs_review                 = EXCLUDED.needs_review,
			updated_at                   = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		row.EmployeeID,
		row.CompanyID,
		row.WorkDate,
		row.ShiftID,
		row.CheckInTime,
		row.CheckOutTime,
		row.RegularHours,
		row.OvertimeHours,
		row.DelayMinutes,
		row.EarlyCheckoutPenaltyHours,
		row.IsDayOff,
		row.NeedsReview,
	).Scan(&row.ID, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		return ledger.MonthlyShift{}, fmt.Errorf("failed to upsert ledger row: %w", err)
	}
	return row, nil
}

// GetByEmployeeAndDate implements ledger.Repository.
func (r *ledgerRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (ledger.MonthlyShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ledgerColumns + `
		FROM monthly_shifts
		WHERE employee_id = $1 AND work_date = $2 AND company_id = $3
	`

	row, err := scanLedgerRow(q.QueryRow(ctx, query, employeeID, workDate, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ledger.MonthlyShift{}, ledger.ErrLedgerNotFound
		}
		return ledger.MonthlyShift{}, fmt.Errorf("failed to get ledger row: %w", err)
	}
	return row, nil
}

// ListByDateRange implements ledger.Repository.
func (r *ledgerRepository) ListByDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]ledger.MonthlyShift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ledgerColumns + `
		FROM monthly_shifts
		WHERE employee_id = $1 AND company_id = $2
		  AND work_date BETWEEN $3 AND $4
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger rows: %w", err)
	}
	defer rows.Close()

	var out []ledger.MonthlyShift
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger rows: %w", err)
	}
	return out, nil
}

func scanLedgerRow(row rowScanner) (ledger.MonthlyShift, error) {
	var m ledger.MonthlyShift
	err := row.Scan(
		&m.ID, &m.EmployeeID, &m.CompanyID, &m.WorkDate, &m.ShiftID,
		&m.CheckInTime, &m.CheckOutTime,
		&m.RegularHours, &m.OvertimeHours, &m.DelayMinutes, &m.EarlyCheckoutPenaltyHours,
		&m.IsDayOff, &m.NeedsReview, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}
