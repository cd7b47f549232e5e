package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
	"github.com/timekeep-hq/timekeep-backend-go/internal/pkg/database"
)

type employeeDirectory struct {
	db *database.DB
}

// NewEmployeeDirectory reads the employee directory maintained by the
// HR system; the engine only consults it for positions.
func NewEmployeeDirectory(db *database.DB) shift.Directory {
	return &employeeDirectory{db: db}
}

// GetPositionByEmployeeID implements shift.Directory.
func (d *employeeDirectory) GetPositionByEmployeeID(ctx context.Context, employeeID string, companyID string) (string, error) {
	q := GetQuerier(ctx, d.db)

	query := `
		SELECT position
		FROM employees
		WHERE id = $1 AND company_id = $2
	`

	var position string
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(&position)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shift.ErrPositionNotFound
		}
		return "", fmt.Errorf("failed to get employee position: %w", err)
	}
	if position == "" {
		return "", shift.ErrPositionNotFound
	}
	return position, nil
}
