package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

func newTestAuthService(t *testing.T, allowRegister bool) (*AuthServiceImpl, *servicetest.UserStore) {
	t.Helper()

	store := servicetest.NewUserStore()
	svc := NewAuthService(store, jwt.NewJWTService(testSecret, testAccessExp), allowRegister).(*AuthServiceImpl)
	svc.bcryptCost = bcrypt.MinCost
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC) }
	return svc, store
}

func createAuthTestUser(t *testing.T, store *servicetest.UserStore, email string, active bool) user.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := store.Create(context.Background(), user.User{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
		Department:   "Engineering",
		IsActive:     active,
		WorkSchedule: user.DefaultWorkSchedule(),
		LeaveBalance: user.DefaultLeaveBalance(),
	})
	require.NoError(t, err)
	return u
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, store := newTestAuthService(t, false)
	u := createAuthTestUser(t, store, "login@example.com", true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: " Login@Example.com ", Password: "password123"})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, u.ID, resp.User.ID)
	require.NotNil(t, resp.User.LastLoginAt)

	stored, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestAuthService_Login_Failures(t *testing.T) {
	svc, store := newTestAuthService(t, false)
	createAuthTestUser(t, store, "active@example.com", true)
	createAuthTestUser(t, store, "inactive@example.com", false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "active@example.com", "wrongpassword"},
		{"unknown email", "nobody@example.com", "password123"},
		{"deactivated account", "inactive@example.com", "password123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), auth.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	_, err := svc.Login(context.Background(), auth.LoginRequest{Email: "not-an-email"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "email")
	assert.Contains(t, verrs.ToMap(), "password")
}

func TestAuthService_Register(t *testing.T) {
	svc, store := newTestAuthService(t, true)

	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "Grace@Example.com",
		Password:  "secret1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "grace@example.com", resp.User.Email)
	assert.Equal(t, "employee", resp.User.Role)
	assert.Equal(t, user.DefaultDepartment, resp.User.Department)
	assert.Equal(t, 21.0, resp.User.LeaveBalance.Annual)

	stored, err := store.GetByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))

	_, err = svc.Register(context.Background(), auth.RegisterRequest{
		FirstName: "Grace",
		LastName:  "Again",
		Email:     "grace@example.com",
		Password:  "secret1",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Register_Disabled(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "grace@example.com",
		Password:  "secret1",
	})

	assert.ErrorIs(t, err, auth.ErrRegistrationDisabled)
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t, false)
	u := createAuthTestUser(t, store, "change@example.com", true)

	err := svc.ChangePassword(ctx, auth.ChangePasswordRequest{UserID: u.ID, CurrentPassword: "nope", NewPassword: "newpass1"})
	assert.ErrorIs(t, err, auth.ErrIncorrectPassword)

	err = svc.ChangePassword(ctx, auth.ChangePasswordRequest{UserID: u.ID, CurrentPassword: "password123", NewPassword: "short"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	err = svc.ChangePassword(ctx, auth.ChangePasswordRequest{UserID: u.ID, CurrentPassword: "password123", NewPassword: "newpass1"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "change@example.com", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestAuthService_MeAndUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestAuthService(t, false)
	u := createAuthTestUser(t, store, "me@example.com", true)

	me, err := svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", me.FullName)

	first := "Augusta"
	phone := "+44 20 7946 0958"
	updated, err := svc.UpdateProfile(ctx, user.UpdateProfileRequest{UserID: u.ID, FirstName: &first, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Augusta Lovelace", updated.FullName)
	require.NotNil(t, updated.Phone)

	_, err = svc.Me(ctx, "0190f0c1-0000-7000-8000-0000000fffff")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}
