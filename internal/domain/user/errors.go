package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrEmployeeCodeExists      = errors.New("employee code already exists")
	ErrAccountInactive         = errors.New("account is deactivated")
	ErrAdminAccessRequired     = errors.New("admin access required")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrUnknownLeaveBalance     = errors.New("leave type has no tracked balance")
)
