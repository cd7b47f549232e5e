package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
)

type shiftAssignmentRepository struct {
	db *database.DB
}

func NewShiftAssignmentRepository(db *database.DB) shift.AssignmentRepository {
	return &shiftAssignmentRepository{db: db}
}

// GetByEmployeeAndDate implements shift.AssignmentRepository.
func (r *shiftAssignmentRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, work_date, shift_id, is_day_off, assigned_by, created_at, updated_at
		FROM shift_assignments
		WHERE employee_id = $1 AND work_date = $2 AND company_id = $3
	`

	var a shift.Assignment
	err := q.QueryRow(ctx, query, employeeID, workDate, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.WorkDate, &a.ShiftID,
		&a.IsDayOff, &a.AssignedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Assignment{}, shift.ErrAssignmentNotFound
		}
		return shift.Assignment{}, fmt.Errorf("failed to get shift assignment: %w", err)
	}
	return a, nil
}

// Upsert implements shift.AssignmentRepository. One override per
// (employee, work date); a repeat replaces the previous one.
func (r *shiftAssignmentRepository) Upsert(ctx context.Context, assignment shift.Assignment) (shift.Assignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_assignments (id, company_id, employee_id, work_date, shift_id, is_day_off, assigned_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, work_date) DO UPDATE SET
			shift_id    = EXCLUDED.shift_id,
			is_day_off  = EXCLUDED.is_day_off,
			assigned_by = EXCLUDED.assigned_by,
			updated_at  = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.ID,
		assignment.CompanyID,
		assignment.EmployeeID,
		assignment.WorkDate,
		assignment.ShiftID,
		assignment.IsDayOff,
		assignment.AssignedBy,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		return shift.Assignment{}, fmt.Errorf("failed to upsert shift assignment: %w", err)
	}
	return assignment, nil
}
