package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.March, 4, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestEvaluateLateness(t *testing.T) {
	scheduled := at(9, 0)

	tests := []struct {
		name       string
		now        time.Time
		wantLate   bool
		wantLateBy int
	}{
		{"early", at(8, 45), false, 0},
		{"on time", at(9, 0), false, 0},
		{"within grace", at(9, 9), false, 0},
		{"exactly at grace boundary", at(9, 10), false, 0},
		{"one second past grace", at(9, 10).Add(time.Second), true, 10},
		{"twelve minutes late", at(9, 12), true, 12},
		{"seconds are floored", at(9, 12).Add(59 * time.Second), true, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			late, lateBy := EvaluateLateness(tt.now, scheduled)
			assert.Equal(t, tt.wantLate, late)
			assert.Equal(t, tt.wantLateBy, lateBy)
		})
	}
}

func TestRecompute_FullDayWithLunch(t *testing.T) {
	ts := Timesheet{
		ClockIn:  ptr(at(9, 0)),
		ClockOut: ptr(at(18, 0)),
		Breaks:   []Break{{Start: at(12, 0), End: ptr(at(12, 30)), DurationMinutes: 30}},
	}

	ts.Recompute()

	assert.Equal(t, 30, ts.TotalBreakMinutes)
	assert.Equal(t, 510, ts.TotalWorkMinutes)
	assert.Equal(t, 8.5, ts.TotalWorkHours)
	assert.Equal(t, 30, ts.OvertimeMinutes)
}

func TestRecompute_Idempotent(t *testing.T) {
	ts := Timesheet{
		ClockIn:  ptr(at(8, 47)),
		ClockOut: ptr(at(17, 3).Add(41 * time.Second)),
		Breaks: []Break{
			{Start: at(10, 0), DurationMinutes: 12},
			{Start: at(13, 0), DurationMinutes: 47},
		},
	}

	ts.Recompute()
	first := ts
	ts.Recompute()

	assert.Equal(t, first.TotalBreakMinutes, ts.TotalBreakMinutes)
	assert.Equal(t, first.TotalWorkMinutes, ts.TotalWorkMinutes)
	assert.Equal(t, first.TotalWorkHours, ts.TotalWorkHours)
	assert.Equal(t, first.OvertimeMinutes, ts.OvertimeMinutes)

	// 496 raw minutes, 59 break minutes
	assert.Equal(t, 437, ts.TotalWorkMinutes)
	assert.Equal(t, 7.28, ts.TotalWorkHours)
	assert.Equal(t, 0, ts.OvertimeMinutes)
}

func TestRecompute_Properties(t *testing.T) {
	for _, tc := range []struct {
		in, out time.Time
		breaks  []int
	}{
		{at(9, 0), at(9, 30), []int{45}},
		{at(7, 0), at(20, 15), []int{30, 15}},
		{at(9, 0), at(17, 0), nil},
		{at(9, 0), at(9, 0), []int{0}},
	} {
		ts := Timesheet{ClockIn: ptr(tc.in), ClockOut: ptr(tc.out)}
		sum := 0
		for _, d := range tc.breaks {
			ts.Breaks = append(ts.Breaks, Break{Start: tc.in, DurationMinutes: d})
			sum += d
		}

		ts.Recompute()

		raw := int(tc.out.Sub(tc.in) / time.Minute)
		assert.Equal(t, max(0, raw-sum), ts.TotalWorkMinutes)
		assert.Equal(t, max(0, ts.TotalWorkMinutes-StandardWorkMinutes), ts.OvertimeMinutes)
		assert.GreaterOrEqual(t, ts.TotalWorkMinutes, 0)
	}
}

func TestRecompute_NoopWithoutClockOut(t *testing.T) {
	ts := Timesheet{ClockIn: ptr(at(9, 0)), TotalWorkMinutes: 99}
	ts.Recompute()
	assert.Equal(t, 99, ts.TotalWorkMinutes)
}

func TestBreakStateMachine(t *testing.T) {
	var ts Timesheet
	assert.ErrorIs(t, ts.StartBreak(at(10, 0)), ErrNoActiveSession)

	ts.ClockIn = ptr(at(9, 0))
	_, err := ts.EndBreak(at(10, 0))
	assert.ErrorIs(t, err, ErrNotOnBreak)

	require.NoError(t, ts.StartBreak(at(12, 0)))
	assert.True(t, ts.IsOnBreak)
	assert.ErrorIs(t, ts.StartBreak(at(12, 1)), ErrAlreadyOnBreak)
	assert.ErrorIs(t, ts.ClockOutAt(at(12, 5), nil), ErrBreakInProgress)

	duration, err := ts.EndBreak(at(12, 30).Add(59 * time.Second))
	require.NoError(t, err)
	assert.Equal(t, 30, duration)
	assert.False(t, ts.IsOnBreak)
	require.Len(t, ts.Breaks, 1)
	require.NotNil(t, ts.Breaks[0].End)

	notes := "wrapped up"
	require.NoError(t, ts.ClockOutAt(at(18, 0), &notes))
	assert.Equal(t, 510, ts.TotalWorkMinutes)
	assert.Equal(t, "wrapped up", *ts.Notes)

	assert.ErrorIs(t, ts.ClockOutAt(at(18, 5), nil), ErrAlreadyClockedOut)
	assert.ErrorIs(t, ts.StartBreak(at(18, 10)), ErrNoActiveSession)
}

func TestClockOutAt_NotClockedIn(t *testing.T) {
	var ts Timesheet
	assert.ErrorIs(t, ts.ClockOutAt(at(18, 0), nil), ErrNotClockedIn)
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2024, time.March, 4, 20, 0, 0, 0, time.UTC) // 03:00 on the 5th in WIB

	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), DateOf(now, loc))
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), DateOf(now, time.UTC))
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(time.Date(2024, time.February, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), to)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]Timesheet{
		{Status: StatusPresent, TotalWorkHours: 8.5, OvertimeMinutes: 30},
		{Status: StatusLate, IsLate: true, TotalWorkHours: 7.25},
		{Status: StatusAbsent},
		{Status: StatusOnLeave},
	})

	assert.Equal(t, 15.75, stats.TotalWorkHours)
	assert.Equal(t, 30, stats.OvertimeMinutes)
	assert.Equal(t, 2, stats.PresentDays)
	assert.Equal(t, 1, stats.AbsentDays)
	assert.Equal(t, 1, stats.LeaveDays)
	assert.Equal(t, 1, stats.LateDays)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Clocked in successfully", ClockInMessage(TimesheetResponse{}))
	assert.Equal(t, "Clocked in (12 minutes late)", ClockInMessage(TimesheetResponse{IsLate: true, LateByMinutes: 12}))
	assert.Equal(t, "Break ended (30 minutes)", BreakEndedMessage(TimesheetResponse{
		Breaks: []BreakResponse{{DurationMinutes: 5}, {DurationMinutes: 30}},
	}))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 8.33, Round2(500.0/60))
	assert.Equal(t, 0.5, Round2(0.499))
	assert.Equal(t, 7.0, Round2(7))
}
