package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey struct{ name string }

var currentUserKey = &contextKey{"current_user"}

// AuthRequired runs after jwtauth.Verifier. It accepts only access tokens and
// loads the token's user, rejecting accounts that no longer exist or were
// deactivated after the token was issued.
func AuthRequired(users user.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			userID, ok := claims["user_id"].(string)
			if !ok || userID == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					response.HandleError(w, auth.ErrInvalidToken)
					return
				}
				response.HandleError(w, err)
				return
			}
			if !u.IsActive {
				response.HandleError(w, user.ErrAccountInactive)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		}
		return http.HandlerFunc(hfn)
	}
}

// WithUser stores the authenticated user on ctx.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, currentUserKey, u)
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(currentUserKey).(user.User)
	return u, ok
}
