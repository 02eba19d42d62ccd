package leave

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrLeaveNotFound        = errors.New("leave not found")
	ErrAlreadyReviewed      = errors.New("leave already reviewed")
	ErrCannotCancelApproved = errors.New("cannot cancel an approved leave")
	ErrInvalidDateRange     = errors.New("end date must be after start date")
	ErrNoWorkingDays        = errors.New("leave span contains no working days")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
)

// BalanceError reports an application that exceeds the remaining balance.
type BalanceError struct {
	LeaveType LeaveType
	Available float64
	Requested float64
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("Insufficient %s leave. Available: %s days.",
		e.LeaveType, strconv.FormatFloat(e.Available, 'f', -1, 64))
}

func (e *BalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
