package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/attendance"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
)

// attendanceRepository persists attendance records and break sessions.
//
// Two partial unique indexes carry the state-machine invariants so they
// hold across service instances:
//
//	uq_attendance_open:  attendance_records(employee_id) WHERE check_out_time IS NULL
//	uq_break_open:       break_sessions(record_id)       WHERE end_time IS NULL
type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

const recordColumns = `id, employee_id, company_id, work_date, shift_id, check_in_time, check_out_time, created_at, updated_at`

// Create implements attendance.Repository. A unique-violation on the
// open-session index maps to ErrAlreadyCheckedIn: with two concurrent
// check-ins exactly one row wins.
func (r *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_records (id, employee_id, company_id, work_date, shift_id, check_in_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.CompanyID,
		record.WorkDate,
		record.ShiftID,
		record.CheckInTime,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return record, nil
}

// GetOpenSession implements attendance.Repository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND company_id = $2 AND check_out_time IS NULL
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrNoOpenSession
		}
		return attendance.Record{}, fmt.Errorf("failed to get open session: %w", err)
	}

	if err := r.attachBreaks(ctx, q, &record); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time, companyID string) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND work_date = $2 AND company_id = $3
	`

	record, err := scanRecord(q.QueryRow(ctx, query, employeeID, workDate, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	if err := r.attachBreaks(ctx, q, &record); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// ListByDateRange implements attendance.Repository.
func (r *attendanceRepository) ListByDateRange(ctx context.Context, employeeID string, startDate, endDate time.Time, companyID string) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND company_id = $2
		  AND work_date BETWEEN $3 AND $4
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read attendance records: %w", err)
	}

	for i := range records {
		if err := r.attachBreaks(ctx, q, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// Close implements attendance.Repository.
func (r *attendanceRepository) Close(ctx context.Context, recordID string, checkOutTime time.Time, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET check_out_time = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3 AND check_out_time IS NULL
	`

	tag, err := q.Exec(ctx, query, checkOutTime, recordID, companyID)
	if err != nil {
		return fmt.Errorf("failed to close attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrNoOpenSession
	}
	return nil
}

// GetStaleOpenSessions implements attendance.Repository.
func (r *attendanceRepository) GetStaleOpenSessions(ctx context.Context, cutoffDays int) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE check_out_time IS NULL
		  AND work_date < CURRENT_DATE - $1::int
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, cutoffDays)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale open sessions: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stale session: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stale sessions: %w", err)
	}

	for i := range records {
		if err := r.attachBreaks(ctx, q, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// StartBreak implements attendance.Repository. The open-break index maps
// a second concurrent start to ErrBreakAlreadyOpen.
func (r *attendanceRepository) StartBreak(ctx context.Context, session attendance.BreakSession) (attendance.BreakSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO break_sessions (id, record_id, start_time, reason)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		session.ID,
		session.RecordID,
		session.StartTime,
		session.Reason,
	).Scan(&session.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.BreakSession{}, attendance.ErrBreakAlreadyOpen
		}
		return attendance.BreakSession{}, fmt.Errorf("failed to start break: %w", err)
	}
	return session, nil
}

// StopBreak implements attendance.Repository.
func (r *attendanceRepository) StopBreak(ctx context.Context, recordID string, endTime time.Time) (attendance.BreakSession, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE break_sessions
		SET end_time = $1
		WHERE record_id = $2 AND end_time IS NULL
		RETURNING id, record_id, start_time, end_time, reason
	`

	var session attendance.BreakSession
	err := q.QueryRow(ctx, query, endTime, recordID).Scan(
		&session.ID, &session.RecordID, &session.StartTime, &session.EndTime, &session.Reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.BreakSession{}, attendance.ErrNoBreakOpen
		}
		return attendance.BreakSession{}, fmt.Errorf("failed to stop break: %w", err)
	}
	return session, nil
}

func scanRecord(row rowScanner) (attendance.Record, error) {
	var record attendance.Record
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.CompanyID, &record.WorkDate,
		&record.ShiftID, &record.CheckInTime, &record.CheckOutTime,
		&record.CreatedAt, &record.UpdatedAt,
	)
	return record, err
}

func (r *attendanceRepository) attachBreaks(ctx context.Context, q database.Querier, record *attendance.Record) error {
	query := `
		SELECT id, record_id, start_time, end_time, reason
		FROM break_sessions
		WHERE record_id = $1
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, record.ID)
	if err != nil {
		return fmt.Errorf("failed to list break sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var session attendance.BreakSession
		if err := rows.Scan(&session.ID, &session.RecordID, &session.StartTime, &session.EndTime, &session.Reason); err != nil {
			return fmt.Errorf("failed to scan break session: %w", err)
		}
		record.Breaks = append(record.Breaks, session)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read break sessions: %w", err)
	}
	return nil
}
