package leave

import (
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

// HalfDayValue is the day count of any half-day application.
const HalfDayValue = 0.5

// CountBusinessDays counts Monday to Friday dates in [start, end], inclusive.
// Only the calendar date of each bound is considered.
func CountBusinessDays(start, end time.Time) int {
	cur := dateOnly(start)
	last := dateOnly(end)

	days := 0
	for !cur.After(last) {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return days
}

// TotalDays computes the chargeable days of an application.
func TotalDays(start, end time.Time, isHalfDay bool) (float64, error) {
	if dateOnly(end).Before(dateOnly(start)) {
		return 0, ErrInvalidDateRange
	}
	if isHalfDay {
		return HalfDayValue, nil
	}
	days := CountBusinessDays(start, end)
	if days == 0 {
		return 0, ErrNoWorkingDays
	}
	return float64(days), nil
}

// TracksBalance reports whether the type draws from a stored balance.
// Maternity, paternity and bereavement leave are exempt.
func TracksBalance(t LeaveType) bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeCasual, LeaveTypeUnpaid:
		return true
	}
	return false
}

// AvailableBalance returns the remaining days for a tracked type.
func AvailableBalance(b user.LeaveBalance, t LeaveType) (float64, bool) {
	switch t {
	case LeaveTypeAnnual:
		return b.Annual, true
	case LeaveTypeSick:
		return b.Sick, true
	case LeaveTypeCasual:
		return b.Casual, true
	case LeaveTypeUnpaid:
		return b.Unpaid, true
	}
	return 0, false
}

// CheckBalance fails with a *BalanceError when a tracked balance cannot cover days.
func CheckBalance(b user.LeaveBalance, t LeaveType, days float64) error {
	available, tracked := AvailableBalance(b, t)
	if !tracked {
		return nil
	}
	if available < days {
		return &BalanceError{LeaveType: t, Available: available, Requested: days}
	}
	return nil
}

// CanReview reports whether a leave in status may receive a decision.
func CanReview(status Status) error {
	if status != StatusPending {
		return ErrAlreadyReviewed
	}
	return nil
}

// CanCancel reports whether the owner may cancel a leave in status.
// Pending and rejected leaves can be withdrawn.
func CanCancel(status Status) error {
	switch status {
	case StatusPending, StatusRejected:
		return nil
	case StatusApproved:
		return ErrCannotCancelApproved
	default:
		return ErrLeaveNotFound
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
