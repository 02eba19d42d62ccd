package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeUserRepo struct {
	user.UserRepository
	users  map[string]user.User
	debits int
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) DebitLeaveBalance(ctx context.Context, id string, balanceType string, days float64) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	switch balanceType {
	case "annual":
		u.LeaveBalance.Annual -= days
	case "sick":
		u.LeaveBalance.Sick -= days
	case "casual":
		u.LeaveBalance.Casual -= days
	case "unpaid":
		u.LeaveBalance.Unpaid -= days
	default:
		return user.ErrUnknownLeaveBalance
	}
	f.users[id] = u
	f.debits++
	return nil
}

type fakeLeaveRepo struct {
	leaves map[string]leave.Leave
	order  []string
	seq    int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: map[string]leave.Leave{}}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	f.seq++
	l.ID = fmt.Sprintf("0190f0c1-0000-7000-8000-%012d", f.seq)
	l.Status = leave.StatusPending
	f.leaves[l.ID] = l
	f.order = append(f.order, l.ID)
	return l, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) GetByIDAndEmployee(ctx context.Context, id string, employeeID string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok || l.EmployeeID != employeeID {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (f *fakeLeaveRepo) Review(ctx context.Context, id string, status leave.Status, reviewerID string, note *string, at time.Time) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok || l.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrAlreadyReviewed
	}
	l.Status = status
	l.ReviewedBy = &reviewerID
	l.ReviewNote = note
	l.ReviewedAt = &at
	f.leaves[id] = l
	return l, nil
}

func (f *fakeLeaveRepo) Cancel(ctx context.Context, id string, employeeID string) (leave.Leave, error) {
	l, ok := f.leaves[id]
	if !ok || l.EmployeeID != employeeID {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if l.Status != leave.StatusPending && l.Status != leave.StatusRejected {
		return leave.Leave{}, leave.ErrCannotCancelApproved
	}
	l.Status = leave.StatusCancelled
	f.leaves[id] = l
	return l, nil
}

func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, filter leave.MyLeaveFilter) ([]leave.Leave, error) {
	var out []leave.Leave
	for i := len(f.order) - 1; i >= 0; i-- {
		l := f.leaves[f.order[i]]
		if l.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(l.Status) != *filter.Status {
			continue
		}
		if filter.Year != nil && l.StartDate.Year() != *filter.Year {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	var out []leave.Leave
	for i := len(f.order) - 1; i >= 0; i-- {
		l := f.leaves[f.order[i]]
		if filter.Status != nil && string(l.Status) != *filter.Status {
			continue
		}
		if filter.LeaveType != nil && string(l.LeaveType) != *filter.LeaveType {
			continue
		}
		out = append(out, l)
	}
	total := int64(len(out))
	start := min((filter.Page-1)*filter.Limit, len(out))
	end := min(start+filter.Limit, len(out))
	return out[start:end], total, nil
}
