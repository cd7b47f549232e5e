package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

func clock(h, m int) shift.ClockTime {
	return shift.ClockTime{Hour: h, Minute: m}
}

func at(day, h, m int) time.Time {
	return time.Date(2025, time.March, day, h, m, 0, 0, time.UTC)
}

func newTestCalculator() *Calculator {
	return NewCalculator(7, 8, 8, time.UTC)
}

func TestCompute_DayShiftFullAttendance(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	res := calc.Compute(at(10, 9, 0), at(10, 16, 0), sh, at(10, 0, 0), 0)

	assert.Equal(t, 7.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 0, res.DelayMinutes)
	assert.Equal(t, 0, res.RawLatenessMinutes)
	assert.Equal(t, 7.0, res.ExpectedHours)
	assert.False(t, res.Basic)
}

func TestCompute_BreaksReduceEffectiveHours(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	// 8h elapsed, 1h on break: 7h effective. The hour past the shift end
	// is overtime, breaks eat into the in-window portion.
	res := calc.Compute(at(10, 9, 0), at(10, 17, 0), sh, at(10, 0, 0), time.Hour)

	assert.Equal(t, 6.0, res.RegularHours)
	assert.Equal(t, 1.0, res.OvertimeHours)
	assert.Equal(t, 0, res.DelayMinutes)
	assert.Equal(t, 0.0, res.EarlyCheckoutPenaltyHours)
}

func TestCompute_ShortDayChargesDelay(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	// 5h effective against 7 expected: the 2h shortfall becomes delay,
	// regardless of the raw 60 minutes of lateness.
	res := calc.Compute(at(10, 10, 0), at(10, 15, 0), sh, at(10, 0, 0), 0)

	assert.Equal(t, 5.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 120, res.DelayMinutes)
	assert.Equal(t, 60, res.RawLatenessMinutes)
	assert.Equal(t, 2.0, res.EarlyCheckoutPenaltyHours)
}

func TestCompute_OvertimeAbsorbsLateness(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	// 20 minutes late but stayed past the end: expectation met, the
	// earned overtime wipes out the raw lateness.
	res := calc.Compute(at(10, 9, 20), at(10, 17, 20), sh, at(10, 0, 0), 0)

	assert.Equal(t, 0, res.DelayMinutes)
	assert.Equal(t, 20, res.RawLatenessMinutes)
	assert.InDelta(t, 1.33, res.OvertimeHours, 0.01)
	assert.InDelta(t, 6.67, res.RegularHours, 0.01)
}

func TestCompute_CustomShiftLatenessExceedsOvertime(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindCustom, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	// Custom shift caps regular at the 7h scheduled duration. 7.5h
	// effective leaves 30 minutes of overtime against 60 minutes of raw
	// lateness, so 30 minutes of delay survive.
	res := calc.Compute(at(10, 10, 0), at(10, 17, 30), sh, at(10, 0, 0), 0)

	assert.Equal(t, 7.0, res.RegularHours)
	assert.Equal(t, 0.5, res.OvertimeHours)
	assert.Equal(t, 30, res.DelayMinutes)
	assert.Equal(t, 60, res.RawLatenessMinutes)
}

func TestCompute_NightShiftAcrossMidnight(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindNight, StartTime: clock(22, 0), EndTime: clock(6, 0)}

	// Checked in on the 10th at 22:00, out on the 11th at 06:00, with a
	// 30 minute break. The whole session bills to the 10th.
	res := calc.Compute(at(10, 22, 0), at(11, 6, 0), sh, at(10, 0, 0), 30*time.Minute)

	assert.Equal(t, 7.5, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 30, res.DelayMinutes)
	assert.Equal(t, 8.0, res.ExpectedHours)
	assert.Equal(t, 0.5, res.EarlyCheckoutPenaltyHours)
}

func TestCompute_AllTimeOvertimeShift(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindAllTimeOvertime, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	res := calc.Compute(at(10, 10, 0), at(10, 13, 0), sh, at(10, 0, 0), 30*time.Minute)

	assert.Equal(t, 0.0, res.RegularHours)
	assert.Equal(t, 2.5, res.OvertimeHours)
	assert.Equal(t, 0, res.DelayMinutes)
	assert.Equal(t, 0.0, res.EarlyCheckoutPenaltyHours)
}

func TestCompute_NoShiftDegradesToBasicMode(t *testing.T) {
	calc := newTestCalculator()

	res := calc.Compute(at(10, 9, 0), at(10, 15, 30), nil, at(10, 0, 0), 30*time.Minute)

	assert.True(t, res.Basic)
	assert.Equal(t, 6.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 0, res.DelayMinutes)
}

func TestCompute_BreaksNeverPushEffectiveBelowZero(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	res := calc.Compute(at(10, 9, 0), at(10, 9, 30), sh, at(10, 0, 0), 2*time.Hour)

	assert.Equal(t, 0.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
}

func TestCompute_IsDeterministic(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	first := calc.Compute(at(10, 9, 20), at(10, 16, 45), sh, at(10, 0, 0), 45*time.Minute)
	second := calc.Compute(at(10, 9, 20), at(10, 16, 45), sh, at(10, 0, 0), 45*time.Minute)

	assert.Equal(t, first, second)
}

func TestComputeCheckIn(t *testing.T) {
	calc := newTestCalculator()
	sh := &shift.Shift{Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0)}

	assert.Equal(t, 20, calc.ComputeCheckIn(at(10, 9, 20), sh, at(10, 0, 0)))
	assert.Equal(t, 0, calc.ComputeCheckIn(at(10, 8, 40), sh, at(10, 0, 0)))
	assert.Equal(t, 0, calc.ComputeCheckIn(at(10, 9, 20), nil, at(10, 0, 0)))
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name        string
		overtime    float64
		delay       float64
		wantNetOT   float64
		wantNetDlay float64
	}{
		{"overtime exceeds delay", 10, 4, 6, 0},
		{"delay exceeds overtime", 3, 5, 0, 2},
		{"exact cancellation", 4, 4, 0, 0},
		{"no delay", 2.5, 0, 2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			netOT, netDelay := Offset(tt.overtime, tt.delay)
			assert.Equal(t, tt.wantNetOT, netOT)
			assert.Equal(t, tt.wantNetDlay, netDelay)
		})
	}
}
