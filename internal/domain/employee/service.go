package employee

import (
	"context"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

// EmployeeService defines the admin directory operations
type EmployeeService interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetEmployee(ctx context.Context, id string) (user.UserResponse, error)

	// CreateEmployee adds a user with the next sequential employee code
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (user.UserResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (user.UserResponse, error)

	// DeactivateEmployee soft deletes; records are never removed
	DeactivateEmployee(ctx context.Context, id string, actorID string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error

	ListDepartments(ctx context.Context) ([]string, error)
}
