package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/ledger"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_NetsOvertimeAgainstDelay(t *testing.T) {
	rows := []ledger.MonthlyShift{
		{WorkDate: day(3), RegularHours: 7, OvertimeHours: 2, DelayMinutes: 0},
		{WorkDate: day(4), RegularHours: 6, OvertimeHours: 0, DelayMinutes: 60},
		{WorkDate: day(5), RegularHours: 7, OvertimeHours: 0.5, DelayMinutes: 30},
	}

	summary := Aggregate("e1", day(1), day(31), rows)

	// 2.5h overtime against 1.5h delay: only the 1h net overtime
	// survives.
	assert.Equal(t, 20.0, summary.RegularHours)
	assert.Equal(t, 1.0, summary.NetOvertimeHours)
	assert.Equal(t, 0.0, summary.NetDelayHours)
	assert.Equal(t, 3, summary.WorkingDays)
	assert.InDelta(t, 7.5, summary.AverageHoursPerDay, 0.01)
}

func TestAggregate_DelayExceedsOvertime(t *testing.T) {
	rows := []ledger.MonthlyShift{
		{WorkDate: day(3), RegularHours: 5, DelayMinutes: 120},
		{WorkDate: day(4), RegularHours: 7, OvertimeHours: 1},
	}

	summary := Aggregate("e1", day(1), day(31), rows)

	assert.Equal(t, 0.0, summary.NetOvertimeHours)
	assert.Equal(t, 1.0, summary.NetDelayHours)
}

func TestAggregate_ExcludesDayOffRows(t *testing.T) {
	rows := []ledger.MonthlyShift{
		{WorkDate: day(3), RegularHours: 7},
		{WorkDate: day(4), IsDayOff: true},
		{WorkDate: day(5), IsDayOff: true, RegularHours: 3, OvertimeHours: 1, DelayMinutes: 30},
	}

	summary := Aggregate("e1", day(1), day(31), rows)

	assert.Equal(t, 7.0, summary.RegularHours)
	assert.Equal(t, 1, summary.WorkingDays)
	assert.Equal(t, 0.0, summary.NetOvertimeHours)
	assert.Equal(t, 0.0, summary.NetDelayHours)
	assert.Equal(t, 7.0, summary.AverageHoursPerDay)
}

func TestAggregate_EmptyMonth(t *testing.T) {
	summary := Aggregate("e1", day(1), day(31), nil)

	assert.Equal(t, 0, summary.WorkingDays)
	assert.Equal(t, 0.0, summary.AverageHoursPerDay)
	assert.Equal(t, 0.0, summary.RegularHours)
}
