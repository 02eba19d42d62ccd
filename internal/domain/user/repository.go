package user

import (
	"context"
	"time"
)

// ListFilter narrows the employee directory. Nil fields are ignored.
type ListFilter struct {
	Department *string
	Role       *Role
	IsActive   *bool
	Search     *string
	Page       int
	Limit      int
}

type UserRepository interface {
	// Create stores u, assigning ID and the next sequential employee code.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByEmployeeCode(ctx context.Context, code string) (User, error)

	// Update persists profile, role, schedule, balance and active flag.
	Update(ctx context.Context, u User) (User, error)
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context, filter ListFilter) ([]User, int64, error)

	// ListActiveIDsByDepartment resolves a department to its active members.
	ListActiveIDsByDepartment(ctx context.Context, department string) ([]string, error)
	CountActiveNonAdmin(ctx context.Context) (int64, error)
	ListDepartments(ctx context.Context) ([]string, error)

	// DebitLeaveBalance subtracts days from one tracked balance in a single
	// atomic update, without checking the result stays non-negative.
	DebitLeaveBalance(ctx context.Context, id string, balanceType string, days float64) error
}
