package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db database.Transactor
	leave.LeaveRepository
	user.UserRepository
	now func() time.Time
}

func NewLeaveService(db database.Transactor, leaveRepository leave.LeaveRepository, userRepository user.UserRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		db:              db,
		LeaveRepository: leaveRepository,
		UserRepository:  userRepository,
		now:             time.Now,
	}
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	leaveType := leave.LeaveType(req.LeaveType)

	totalDays, err := leave.TotalDays(req.Start, req.End, req.IsHalfDay)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	employee, err := l.UserRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := leave.CheckBalance(employee.LeaveBalance, leaveType, totalDays); err != nil {
		return leave.LeaveResponse{}, err
	}

	newLeave := leave.Leave{
		EmployeeID: employee.ID,
		LeaveType:  leaveType,
		StartDate:  req.Start,
		EndDate:    req.End,
		TotalDays:  totalDays,
		IsHalfDay:  req.IsHalfDay,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	}
	if req.IsHalfDay && req.HalfDayType != nil {
		half := leave.HalfDayType(*req.HalfDayType)
		newLeave.HalfDayType = &half
	}

	created, err := l.LeaveRepository.Create(ctx, newLeave)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave: %w", err)
	}

	slog.Info("leave application submitted",
		"leave_id", created.ID,
		"employee_id", employee.ID,
		"leave_type", leaveType,
		"total_days", totalDays,
	)

	return leave.ToResponse(created), nil
}

// Review implements leave.LeaveService.
func (l *LeaveServiceImpl) Review(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := l.LeaveRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave: %w", err)
	}
	if err := leave.CanReview(existing.Status); err != nil {
		return leave.LeaveResponse{}, err
	}

	decision := leave.Status(req.Status)
	var reviewed leave.Leave

	err = l.db.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		reviewed, err = l.LeaveRepository.Review(ctx, req.ID, decision, req.ReviewerID, req.ReviewNote, l.now())
		if err != nil {
			if errors.Is(err, leave.ErrAlreadyReviewed) {
				return err
			}
			return fmt.Errorf("failed to review leave: %w", err)
		}

		if decision != leave.StatusApproved || !leave.TracksBalance(reviewed.LeaveType) {
			return nil
		}

		// Concurrent approvals may drive the balance negative; it is not re-checked here.
		if err := l.UserRepository.DebitLeaveBalance(ctx, reviewed.EmployeeID, string(reviewed.LeaveType), reviewed.TotalDays); err != nil {
			return fmt.Errorf("failed to debit leave balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave reviewed",
		"leave_id", reviewed.ID,
		"status", decision,
		"reviewed_by", req.ReviewerID,
	)

	return leave.ToResponse(reviewed), nil
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, req leave.CancelLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	existing, err := l.LeaveRepository.GetByIDAndEmployee(ctx, req.ID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, leave.ErrLeaveNotFound) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave: %w", err)
	}
	if err := leave.CanCancel(existing.Status); err != nil {
		return leave.LeaveResponse{}, err
	}

	cancelled, err := l.LeaveRepository.Cancel(ctx, req.ID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, leave.ErrCannotCancelApproved) {
			return leave.LeaveResponse{}, err
		}
		return leave.LeaveResponse{}, fmt.Errorf("failed to cancel leave: %w", err)
	}

	slog.Info("leave cancelled", "leave_id", cancelled.ID, "employee_id", req.EmployeeID)

	return leave.ToResponse(cancelled), nil
}

// GetMyLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) GetMyLeaves(ctx context.Context, filter leave.MyLeaveFilter) (leave.MyLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.MyLeaveResponse{}, err
	}

	leaves, err := l.LeaveRepository.ListByEmployee(ctx, filter)
	if err != nil {
		return leave.MyLeaveResponse{}, fmt.Errorf("failed to list leaves: %w", err)
	}

	employee, err := l.UserRepository.GetByID(ctx, filter.EmployeeID)
	if err != nil {
		return leave.MyLeaveResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, lv := range leaves {
		responses = append(responses, leave.ToResponse(lv))
	}

	return leave.MyLeaveResponse{
		Leaves:       responses,
		LeaveBalance: employee.LeaveBalance,
	}, nil
}

// ListLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaves(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	leaves, total, err := l.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, lv := range leaves {
		responses = append(responses, leave.ToResponse(lv))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Leaves:     responses,
	}, nil
}
