package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	Review(ctx context.Context, req ReviewLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, req CancelLeaveRequest) (LeaveResponse, error)

	GetMyLeaves(ctx context.Context, filter MyLeaveFilter) (MyLeaveResponse, error)
	ListLeaves(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
}
