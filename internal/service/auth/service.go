package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	jwt.Service
	allowSelfRegister bool
	bcryptCost        int
	now               func() time.Time
}

func NewAuthService(userRepository user.UserRepository, jwtService jwt.Service, allowSelfRegister bool) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:    userRepository,
		Service:           jwtService,
		allowSelfRegister: allowSelfRegister,
		bcryptCost:        auth.PasswordHashCost,
		now:               time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthServiceImpl) issueToken(u user.User) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(u.ID, u.Email, u.EmployeeCode, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		User:                 user.ToResponse(u),
	}, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if !a.allowSelfRegister {
		return auth.TokenResponse{}, auth.ErrRegistrationDisabled
	}
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	_, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err == nil {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         user.RoleEmployee,
		Department:   req.Department,
		Designation:  req.Designation,
		Phone:        req.Phone,
		JoiningDate:  a.now(),
		IsActive:     true,
		WorkSchedule: user.DefaultWorkSchedule(),
		LeaveBalance: user.DefaultLeaveBalance(),
	}
	if newUser.Department == "" {
		newUser.Department = user.DefaultDepartment
	}
	if newUser.Designation == "" {
		newUser.Designation = user.DefaultDesignation
	}

	created, err := a.UserRepository.Create(ctx, newUser)
	if err != nil {
		if errors.Is(err, user.ErrUserEmailExists) {
			return auth.TokenResponse{}, err
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", created.ID, "employee_code", created.EmployeeCode)

	return a.issueToken(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Deactivated accounts get the same answer as unknown ones.
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	now := a.now()
	if err := a.UserRepository.UpdateLastLogin(ctx, userData.ID, now); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to update last login: %w", err)
	}
	userData.LastLoginAt = &now

	return a.issueToken(userData)
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (user.UserResponse, error) {
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, auth.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user.ToResponse(userData), nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrIncorrectPassword
	}

	hash, err := a.hashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.UserRepository.UpdatePassword(ctx, userData.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password changed", "user_id", userData.ID)
	return nil
}

// UpdateProfile implements auth.AuthService.
func (a *AuthServiceImpl) UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return user.UserResponse{}, auth.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	req.Apply(&userData)

	updated, err := a.UserRepository.Update(ctx, userData)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update profile: %w", err)
	}
	return user.ToResponse(updated), nil
}
