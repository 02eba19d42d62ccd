package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	user.UserRepository
	bcryptCost int
	now        func() time.Time
}

func NewEmployeeService(userRepository user.UserRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		UserRepository: userRepository,
		bcryptCost:     auth.PasswordHashCost,
		now:            time.Now,
	}
}

func (s *EmployeeServiceImpl) getEmployee(ctx context.Context, id string) (user.User, error) {
	if !validator.IsValidUUID(id) {
		return user.User{}, employee.ErrEmployeeNotFound
	}
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.User{}, employee.ErrEmployeeNotFound
		}
		return user.User{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return u, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	users, total, err := s.UserRepository.List(ctx, filter.ToListFilter())
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	employees := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		employees = append(employees, user.ToResponse(u))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := "0 of 0"
	if total > 0 {
		start := (filter.Page-1)*filter.Limit + 1
		end := min(filter.Page*filter.Limit, int(total))
		showing = fmt.Sprintf("%d-%d of %d", start, end, total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  employees,
	}, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.getEmployee(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(u), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	_, err := s.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return user.UserResponse{}, employee.ErrEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return user.UserResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.UserRepository.Create(ctx, req.ToUser(string(hash), s.now()))
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return user.UserResponse{}, employee.ErrEmailExists
		}
		return user.UserResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "employee_code", created.EmployeeCode, "role", created.Role)
	return user.ToResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.getEmployee(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}

	req.Apply(&u)

	updated, err := s.UserRepository.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}
	return user.ToResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return employee.ErrCannotDeactivateSelf
	}

	u, err := s.getEmployee(ctx, id)
	if err != nil {
		return err
	}
	if !u.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	u.IsActive = false
	if _, err := s.UserRepository.Update(ctx, u); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("employee deactivated", "employee_id", u.ID, "actor_id", actorID)
	return nil
}

// ResetPassword implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResetPassword(ctx context.Context, req employee.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := s.getEmployee(ctx, req.ID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.UserRepository.UpdatePassword(ctx, u.ID, string(hash)); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	slog.Info("employee password reset", "employee_id", u.ID)
	return nil
}

// ListDepartments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListDepartments(ctx context.Context) ([]string, error) {
	departments, err := s.UserRepository.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return departments, nil
}
