package shift

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timekeep-hq/timekeep-backend-go/internal/domain/shift"
)

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string, _ string) (shift.Shift, error) {
	sh, ok := f.shifts[id]
	if !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return sh, nil
}

func (f *fakeShiftRepo) ListActiveByPosition(_ context.Context, position string, _ string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, sh := range f.shifts {
		if sh.Position == position && sh.IsActive {
			out = append(out, sh)
		}
	}
	return out, nil
}

func (f *fakeShiftRepo) ListActive(_ context.Context, _ string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, sh := range f.shifts {
		if sh.IsActive {
			out = append(out, sh)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignment *shift.Assignment
}

func (f *fakeAssignmentRepo) GetByEmployeeAndDate(_ context.Context, _ string, _ time.Time, _ string) (shift.Assignment, error) {
	if f.assignment == nil {
		return shift.Assignment{}, shift.ErrAssignmentNotFound
	}
	return *f.assignment, nil
}

func (f *fakeAssignmentRepo) Upsert(_ context.Context, a shift.Assignment) (shift.Assignment, error) {
	f.assignment = &a
	return a, nil
}

type fakeDirectory struct {
	position string
}

func (f *fakeDirectory) GetPositionByEmployeeID(_ context.Context, _ string, _ string) (string, error) {
	if f.position == "" {
		return "", shift.ErrPositionNotFound
	}
	return f.position, nil
}

func clock(h, m int) shift.ClockTime {
	return shift.ClockTime{Hour: h, Minute: m}
}

func at(day, h, m int) time.Time {
	return time.Date(2025, time.March, day, h, m, 0, 0, time.UTC)
}

func newTestResolver(shiftRepo *fakeShiftRepo, assignRepo *fakeAssignmentRepo, dir *fakeDirectory) shift.Resolver {
	return NewResolver(shiftRepo, assignRepo, dir, 30*time.Minute, time.UTC)
}

func TestResolve_DayOffAssignmentWins(t *testing.T) {
	morning := shift.Shift{ID: "s1", Position: "nurse", Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0), IsActive: true}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s1": morning}},
		&fakeAssignmentRepo{assignment: &shift.Assignment{EmployeeID: "e1", IsDayOff: true}},
		&fakeDirectory{position: "nurse"},
	)

	// Even at a time the morning shift window would match, the explicit
	// day off takes precedence.
	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 9, 0), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeDayOff, res.Outcome)
	assert.True(t, res.Explicit)
	assert.Nil(t, res.Shift)
}

func TestResolve_ExplicitAssignmentLoadsShift(t *testing.T) {
	night := shift.Shift{ID: "s2", Position: "guard", Kind: shift.KindNight, StartTime: clock(22, 0), EndTime: clock(6, 0), IsActive: true}
	shiftID := "s2"
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s2": night}},
		&fakeAssignmentRepo{assignment: &shift.Assignment{EmployeeID: "e1", ShiftID: &shiftID}},
		&fakeDirectory{position: "nurse"},
	)

	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 14, 0), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeAssigned, res.Outcome)
	assert.True(t, res.Explicit)
	require.NotNil(t, res.Shift)
	assert.Equal(t, "s2", res.Shift.ID)
}

func TestResolve_InfersShiftFromClock(t *testing.T) {
	morning := shift.Shift{ID: "s1", Position: "nurse", Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0), IsActive: true}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s1": morning}},
		&fakeAssignmentRepo{},
		&fakeDirectory{position: "nurse"},
	)

	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 9, 5), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeAssigned, res.Outcome)
	assert.False(t, res.Explicit)
	require.NotNil(t, res.Shift)
	assert.Equal(t, "s1", res.Shift.ID)
}

func TestResolve_ToleranceEdges(t *testing.T) {
	morning := shift.Shift{ID: "s1", Position: "nurse", Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0), IsActive: true}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s1": morning}},
		&fakeAssignmentRepo{},
		&fakeDirectory{position: "nurse"},
	)

	// Exactly 30 minutes early is still eligible.
	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 8, 30), "c1")
	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeAssigned, res.Outcome)

	// One minute earlier is not.
	res, err = resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 8, 29), "c1")
	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeUnassigned, res.Outcome)

	// The scheduled end is the last eligible minute.
	res, err = resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 16, 0), "c1")
	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeAssigned, res.Outcome)

	res, err = resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 16, 1), "c1")
	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeUnassigned, res.Outcome)
}

func TestResolve_OvernightWindow(t *testing.T) {
	night := shift.Shift{ID: "s2", Position: "guard", Kind: shift.KindNight, StartTime: clock(22, 0), EndTime: clock(6, 0), IsActive: true}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s2": night}},
		&fakeAssignmentRepo{},
		&fakeDirectory{position: "guard"},
	)

	// Both sides of midnight resolve to the same night shift.
	for _, instant := range []time.Time{at(10, 23, 45), at(11, 5, 30), at(10, 21, 30)} {
		res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), instant, "c1")
		require.NoError(t, err)
		assert.Equal(t, shift.OutcomeAssigned, res.Outcome, "instant %v", instant)
		require.NotNil(t, res.Shift)
		assert.Equal(t, "s2", res.Shift.ID)
	}

	// Mid-afternoon is outside the window.
	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 14, 0), "c1")
	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeUnassigned, res.Outcome)
}

func TestResolve_OverlappingWindowsPickNearestStart(t *testing.T) {
	early := shift.Shift{ID: "s1", Position: "nurse", Kind: shift.KindDay, StartTime: clock(7, 0), EndTime: clock(15, 0), IsActive: true}
	late := shift.Shift{ID: "s2", Position: "nurse", Kind: shift.KindDay, StartTime: clock(14, 0), EndTime: clock(22, 0), IsActive: true}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s1": early, "s2": late}},
		&fakeAssignmentRepo{},
		&fakeDirectory{position: "nurse"},
	)

	// 14:30 sits inside both windows; the 14:00 start is nearer.
	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 14, 30), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeAssigned, res.Outcome)
	require.NotNil(t, res.Shift)
	assert.Equal(t, "s2", res.Shift.ID)
}

func TestResolve_InactiveShiftsIgnored(t *testing.T) {
	retired := shift.Shift{ID: "s1", Position: "nurse", Kind: shift.KindDay, StartTime: clock(9, 0), EndTime: clock(16, 0), IsActive: false}
	resolver := newTestResolver(
		&fakeShiftRepo{shifts: map[string]shift.Shift{"s1": retired}},
		&fakeAssignmentRepo{},
		&fakeDirectory{position: "nurse"},
	)

	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 9, 0), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeUnassigned, res.Outcome)
}

func TestResolve_UnknownPositionIsUnassigned(t *testing.T) {
	resolver := newTestResolver(&fakeShiftRepo{}, &fakeAssignmentRepo{}, &fakeDirectory{})

	res, err := resolver.Resolve(context.Background(), "e1", at(10, 0, 0), at(10, 9, 0), "c1")

	require.NoError(t, err)
	assert.Equal(t, shift.OutcomeUnassigned, res.Outcome)
}
