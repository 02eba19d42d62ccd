package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth      AuthHandler
	Timesheet TimesheetHandler
	Leave     LeaveHandler
	Report    ReportHandler
	Employee  EmployeeHandler
	Health    *HealthHandler
}

type RouterOptions struct {
	Logger      *slog.Logger
	FrontendURL string
	APILimiter  *middleware.IPRateLimiter
	AuthLimiter *middleware.IPRateLimiter
}

func NewRouter(JWTService jwt.Service, users user.UserRepository, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logFormat := httplog.SchemaECS.Concise(false)
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			ReplaceAttr: logFormat.ReplaceAttr,
		}))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.RouteNotFound(w, r.Method, r.URL.Path)
	})

	r.Get("/health", h.Health.Health)

	authenticated := func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(users))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if opts.APILimiter != nil {
			r.Use(middleware.RateLimitByIP(opts.APILimiter, "Too many requests, please try again later."))
		}

		r.Get("/health", h.Health.Health)

		r.Route("/auth", func(r chi.Router) {
			if opts.AuthLimiter != nil {
				r.Use(middleware.RateLimitByIP(opts.AuthLimiter, "Too many login attempts, please try again later."))
			}
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)

			r.Group(func(r chi.Router) {
				authenticated(r)
				r.Get("/me", h.Auth.Me)
				r.Put("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			authenticated(r)

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionEditOwnProfile)).Put("/profile", h.Auth.UpdateProfile)
			})

			r.Route("/timesheet", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetClock))
					r.Post("/clock-in", h.Timesheet.ClockIn)
					r.Post("/clock-out", h.Timesheet.ClockOut)
					r.Post("/break-start", h.Timesheet.StartBreak)
					r.Post("/break-end", h.Timesheet.EndBreak)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTimesheetViewOwn))
					r.Get("/today", h.Timesheet.GetToday)
					r.Get("/my", h.Timesheet.GetMyTimesheets)
				})

				r.With(middleware.RequirePermission(user.PermissionTimesheetViewAll)).Get("/all", h.Timesheet.ListTimesheets)
				r.With(middleware.RequirePermission(user.PermissionTimesheetApprove)).Put("/{id}/approve", h.Timesheet.Approve)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/apply", h.Leave.Apply)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveViewOwn))
					r.Get("/my", h.Leave.GetMyLeaves)
					r.Patch("/{id}/cancel", h.Leave.Cancel)
				})

				r.With(middleware.RequirePermission(user.PermissionLeaveViewAll)).Get("/all", h.Leave.ListLeaves)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Put("/{id}/review", h.Leave.Review)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/attendance", h.Report.GetMonthlyAttendanceReport)
				r.Get("/summary", h.Report.GetDashboardSummary)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/employees", h.Employee.List)
				r.Post("/employees", h.Employee.Create)
				r.Get("/employees/{id}", h.Employee.Get)
				r.Put("/employees/{id}", h.Employee.Update)
				r.Delete("/employees/{id}", h.Employee.Deactivate)
				r.Post("/employees/{id}/reset-password", h.Employee.ResetPassword)
				r.Get("/departments", h.Employee.ListDepartments)
			})
		})
	})
	return r
}
