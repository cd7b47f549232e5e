package ledger

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
	"github.com/timekeep-hq/timekeep-backend-go/internal/service/timesheet"
)

type ledgerServiceImpl struct {
	ledgerRepo ledger.Repository
}

func NewLedgerService(ledgerRepo ledger.Repository) ledger.Service {
	return &ledgerServiceImpl{
		ledgerRepo: ledgerRepo,
	}
}

// GetDailyLedger implements ledger.Service.
func (s *ledgerServiceImpl) GetDailyLedger(ctx context.Context, req ledger.DailyLedgerRequest) (ledger.DailyResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.DailyResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return ledger.DailyResponse{}, err
	}

	workDate, _ := time.Parse("2006-01-02", req.WorkDate)
	row, err := s.ledgerRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, workDate, companyID)
	if err != nil {
		return ledger.DailyResponse{}, err
	}

	return ledger.MapRowToResponse(row), nil
}

// GetMonthlySummary implements ledger.Service. Day-off rows are excluded
// from every aggregate; overtime and delay are netted against each other
// across the whole month, so at most one of the two survives.
func (s *ledgerServiceImpl) GetMonthlySummary(ctx context.Context, req ledger.MonthlySummaryRequest) (ledger.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return ledger.SummaryResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return ledger.SummaryResponse{}, err
	}

	month, _ := time.Parse("2006-01", req.Month)
	periodStart := month
	periodEnd := month.AddDate(0, 1, -1)

	rows, err := s.ledgerRepo.ListByDateRange(ctx, req.EmployeeID, periodStart, periodEnd, companyID)
	if err != nil {
		return ledger.SummaryResponse{}, fmt.Errorf("failed to list ledger rows: %w", err)
	}

	summary := Aggregate(req.EmployeeID, periodStart, periodEnd, rows)
	return ledger.SummaryResponse{
		EmployeeID:         summary.EmployeeID,
		PeriodStart:        summary.PeriodStart.Format("2006-01-02"),
		PeriodEnd:          summary.PeriodEnd.Format("2006-01-02"),
		RegularHours:       summary.RegularHours,
		NetOvertimeHours:   summary.NetOvertimeHours,
		NetDelayHours:      summary.NetDelayHours,
		WorkingDays:        summary.WorkingDays,
		AverageHoursPerDay: summary.AverageHoursPerDay,
	}, nil
}

// Aggregate reduces daily ledger rows to the monthly summary.
func Aggregate(employeeID string, periodStart, periodEnd time.Time, rows []ledger.MonthlyShift) ledger.Summary {
	summary := ledger.Summary{
		EmployeeID:  employeeID,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}

	var totalOvertime, totalDelayHours float64
	for _, row := range rows {
		if row.IsDayOff {
			continue
		}
		summary.RegularHours += row.RegularHours
		totalOvertime += row.OvertimeHours
		totalDelayHours += float64(row.DelayMinutes) / 60
		summary.WorkingDays++
	}

	summary.RegularHours = round2(summary.RegularHours)
	summary.NetOvertimeHours, summary.NetDelayHours = timesheet.Offset(totalOvertime, totalDelayHours)
	if summary.WorkingDays > 0 {
		summary.AverageHoursPerDay = round2((summary.RegularHours + totalOvertime) / float64(summary.WorkingDays))
	}
	return summary
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}
