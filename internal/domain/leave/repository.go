package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)

	// GetByIDAndEmployee returns ErrLeaveNotFound unless employeeID owns the leave.
	GetByIDAndEmployee(ctx context.Context, id string, employeeID string) (Leave, error)

	// Review records a decision only while the leave is pending. It returns
	// ErrAlreadyReviewed when no pending row matched.
	Review(ctx context.Context, id string, status Status, reviewerID string, note *string, at time.Time) (Leave, error)

	// Cancel moves an owned pending leave to cancelled. It returns
	// ErrAlreadyReviewed when no pending row matched.
	Cancel(ctx context.Context, id string, employeeID string) (Leave, error)

	ListByEmployee(ctx context.Context, filter MyLeaveFilter) ([]Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, int64, error)
}
