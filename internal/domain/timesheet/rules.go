package timesheet

import (
	"math"
	"time"
)

const (
	// LateGracePeriod is how long after the scheduled start a clock-in still counts as on time.
	LateGracePeriod = 10 * time.Minute

	// StandardWorkMinutes is the length of a standard day; anything beyond is overtime.
	StandardWorkMinutes = 480
)

// DateOf returns the calendar date of now in loc, as midnight UTC.
func DateOf(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EvaluateLateness applies the grace period. lateBy is whole minutes after the
// scheduled start, and 0 when on time.
func EvaluateLateness(now, scheduledStart time.Time) (late bool, lateBy int) {
	if !now.After(scheduledStart.Add(LateGracePeriod)) {
		return false, 0
	}
	return true, wholeMinutes(now.Sub(scheduledStart))
}

// Recompute derives break, work and overtime totals from the raw timestamps.
// It is a no-op until both clock-in and clock-out are set.
func (t *Timesheet) Recompute() {
	if t.ClockIn == nil || t.ClockOut == nil {
		return
	}

	raw := wholeMinutes(t.ClockOut.Sub(*t.ClockIn))

	breaks := 0
	for _, b := range t.Breaks {
		breaks += b.DurationMinutes
	}

	work := max(0, raw-breaks)

	t.TotalBreakMinutes = breaks
	t.TotalWorkMinutes = work
	t.TotalWorkHours = RoundHours(work)
	t.OvertimeMinutes = max(0, work-StandardWorkMinutes)
}

// StartBreak opens a new break. Requires an open session with no open break.
func (t *Timesheet) StartBreak(now time.Time) error {
	if t.ClockIn == nil || t.ClockOut != nil {
		return ErrNoActiveSession
	}
	if t.IsOnBreak {
		return ErrAlreadyOnBreak
	}

	t.Breaks = append(t.Breaks, Break{Start: now})
	t.IsOnBreak = true
	return nil
}

// EndBreak closes the most recently opened break and returns its duration in minutes.
func (t *Timesheet) EndBreak(now time.Time) (int, error) {
	if !t.IsOnBreak || len(t.Breaks) == 0 {
		return 0, ErrNotOnBreak
	}

	last := &t.Breaks[len(t.Breaks)-1]
	end := now
	last.End = &end
	last.DurationMinutes = max(0, wholeMinutes(now.Sub(last.Start)))
	t.IsOnBreak = false
	t.Recompute()
	return last.DurationMinutes, nil
}

// ClockOutAt closes the session and recomputes totals.
func (t *Timesheet) ClockOutAt(now time.Time, notes *string) error {
	if t.ClockIn == nil {
		return ErrNotClockedIn
	}
	if t.ClockOut != nil {
		return ErrAlreadyClockedOut
	}
	if t.IsOnBreak {
		return ErrBreakInProgress
	}

	out := now
	t.ClockOut = &out
	if notes != nil {
		t.Notes = notes
	}
	t.Recompute()
	return nil
}

// IsActive reports whether the employee is clocked in and not yet clocked out.
func (t Timesheet) IsActive() bool {
	return t.ClockIn != nil && t.ClockOut == nil
}

// LastBreak returns the most recent break, if any.
func (t Timesheet) LastBreak() (Break, bool) {
	if len(t.Breaks) == 0 {
		return Break{}, false
	}
	return t.Breaks[len(t.Breaks)-1], true
}

// RoundHours converts minutes to hours rounded to two decimals.
func RoundHours(minutes int) float64 {
	return Round2(float64(minutes) / 60)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func wholeMinutes(d time.Duration) int {
	return int(math.Floor(float64(d.Milliseconds()) / 60000))
}
