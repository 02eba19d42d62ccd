package auth

import (
	"context"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context, userID string) (user.UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, req user.UpdateProfileRequest) (user.UserResponse, error)
}
