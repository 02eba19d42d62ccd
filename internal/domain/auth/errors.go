package auth

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrIncorrectPassword    = errors.New("current password is incorrect")
	ErrRegistrationDisabled = errors.New("self registration is disabled")
	ErrUserNotFound         = errors.New("user not found")
)
