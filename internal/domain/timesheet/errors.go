package timesheet

import "errors"

var (
	// Clock errors
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("you have not clocked in today")
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrBreakInProgress   = errors.New("please end your break before clocking out")

	// Break errors
	ErrNoActiveSession = errors.New("no active session")
	ErrAlreadyOnBreak  = errors.New("already on break")
	ErrNotOnBreak      = errors.New("not on break")

	ErrRecordNotFound = errors.New("timesheet record not found")
)
