package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	authService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/timesheet-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/service/servicetest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router     *chi.Mux
	jwt        jwt.Service
	users      *servicetest.UserStore
	timesheets *stubTimesheetService
	leaves     *stubLeaveService
	reports    *stubReportService

	admin    user.User
	manager  user.User
	employee user.User
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestEnv(t *testing.T, opts RouterOptions) *testEnv {
	t.Helper()

	env := &testEnv{
		jwt:        jwt.NewJWTService("handler-test-secret", "1h"),
		users:      servicetest.NewUserStore(),
		timesheets: &stubTimesheetService{},
		leaves:     &stubLeaveService{},
		reports:    &stubReportService{},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	create := func(email string, role user.Role) user.User {
		u, err := env.users.Create(context.Background(), user.User{
			FirstName:    "Test",
			LastName:     string(role),
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Department:   "Engineering",
			IsActive:     true,
			WorkSchedule: user.DefaultWorkSchedule(),
			LeaveBalance: user.DefaultLeaveBalance(),
		})
		require.NoError(t, err)
		return u
	}
	env.admin = create("admin@example.com", user.RoleAdmin)
	env.manager = create("manager@example.com", user.RoleManager)
	env.employee = create("employee@example.com", user.RoleEmployee)

	handlers := Handlers{
		Auth:      NewAuthHandler(authService.NewAuthService(env.users, env.jwt, true)),
		Timesheet: NewTimesheetHandler(env.timesheets),
		Leave:     NewLeaveHandler(env.leaves),
		Report:    NewReportHandler(env.reports),
		Employee:  NewEmployeeHandler(employeeService.NewEmployeeService(env.users)),
		Health:    NewHealthHandler(stubPinger{}, "timesheet-backend", "1.0.0"),
	}
	if opts.FrontendURL == "" {
		opts.FrontendURL = "http://localhost:3000"
	}
	env.router = NewRouter(env.jwt, env.users, handlers, opts)
	return env
}

func (e *testEnv) token(t *testing.T, u user.User) string {
	t.Helper()
	token, _, err := e.jwt.GenerateAccessToken(u.ID, u.Email, u.EmployeeCode, u.Role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path string, as *user.User, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+e.token(t, *as))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &status))
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "connected", status.DB)
	assert.Equal(t, "timesheet-backend", status.Service)

	down := NewHealthHandler(stubPinger{err: errDown}, "timesheet-backend", "1.0.0")
	rec = httptest.NewRecorder()
	down.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &status))
	assert.Equal(t, "disconnected", status.DB)
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email":    "employee@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Login successful", body.Message)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var me user.UserResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &me))
	assert.Equal(t, env.employee.EmployeeCode, me.EmployeeCode)

	rec = env.do(t, http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email":    "employee@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_InvalidBody(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthorization(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	tests := []struct {
		name       string
		method     string
		path       string
		as         *user.User
		wantStatus int
	}{
		{"no token", http.MethodGet, "/api/v1/timesheet/today", nil, http.StatusUnauthorized},
		{"employee own today", http.MethodGet, "/api/v1/timesheet/today", &env.employee, http.StatusOK},
		{"employee cannot list all", http.MethodGet, "/api/v1/timesheet/all", &env.employee, http.StatusForbidden},
		{"manager lists all", http.MethodGet, "/api/v1/timesheet/all", &env.manager, http.StatusOK},
		{"employee cannot view reports", http.MethodGet, "/api/v1/reports/summary", &env.employee, http.StatusForbidden},
		{"manager views reports", http.MethodGet, "/api/v1/reports/summary", &env.manager, http.StatusOK},
		{"admin views reports", http.MethodGet, "/api/v1/reports/summary", &env.admin, http.StatusOK},
		{"manager cannot administer", http.MethodGet, "/api/v1/admin/employees", &env.manager, http.StatusForbidden},
		{"admin administers", http.MethodGet, "/api/v1/admin/employees", &env.admin, http.StatusOK},
		{"employee cannot review leave", http.MethodPut, "/api/v1/leaves/0190f0c1-0000-7000-8000-000000000099/review", &env.employee, http.StatusForbidden},
		{"unknown route", http.MethodGet, "/api/v1/nope", &env.admin, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.as, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestDeactivatedUserTokenRejected(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})
	token := env.token(t, env.employee)

	deactivated := env.employee
	deactivated.IsActive = false
	env.users.Put(deactivated)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/timesheet/today", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClockIn(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})
	env.timesheets.result = timesheet.TimesheetResponse{ID: "ts-1", IsLate: true, LateByMinutes: 12, Status: "late"}

	rec := env.do(t, http.MethodPost, "/api/v1/timesheet/clock-in", &env.employee, nil)

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, "Clocked in (12 minutes late)", body.Message)
	assert.Equal(t, env.employee.ID, env.timesheets.clockInReq.EmployeeID)
	assert.Equal(t, "192.0.2.1", env.timesheets.clockInReq.IPAddress)

	env.timesheets.err = timesheet.ErrAlreadyClockedIn
	rec = env.do(t, http.MethodPost, "/api/v1/timesheet/clock-in", &env.employee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Already clocked in today", decodeEnvelope(t, rec).Error.Message)
}

func TestClockOutAndBreaks(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})
	env.timesheets.result = timesheet.TimesheetResponse{
		ID:     "ts-1",
		Breaks: []timesheet.BreakResponse{{Start: "12:00", DurationMinutes: 30}},
	}

	rec := env.do(t, http.MethodPost, "/api/v1/timesheet/break-end", &env.employee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Break ended (30 minutes)", decodeEnvelope(t, rec).Message)

	rec = env.do(t, http.MethodPost, "/api/v1/timesheet/clock-out", &env.employee, map[string]string{"notes": "done"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Clocked out successfully", decodeEnvelope(t, rec).Message)
	require.NotNil(t, env.timesheets.clockOutReq.Notes)
	assert.Equal(t, "done", *env.timesheets.clockOutReq.Notes)

	env.timesheets.err = timesheet.ErrNotOnBreak
	rec = env.do(t, http.MethodPost, "/api/v1/timesheet/break-end", &env.employee, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAndApproveTimesheets(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	rec := env.do(t, http.MethodGet, "/api/v1/timesheet/all?department=Sales&status=late&page=2&limit=5", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.timesheets.listFilter.Department)
	assert.Equal(t, "Sales", *env.timesheets.listFilter.Department)
	assert.Equal(t, "late", *env.timesheets.listFilter.Status)
	assert.Equal(t, 2, env.timesheets.listFilter.Page)
	assert.Equal(t, 5, env.timesheets.listFilter.Limit)

	rec = env.do(t, http.MethodGet, "/api/v1/timesheet/all?page=two", &env.manager, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	id := "0190f0c1-0000-7000-8000-000000000042"
	rec = env.do(t, http.MethodPut, "/api/v1/timesheet/"+id+"/approve", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, env.timesheets.approveReq.ID)
	assert.Equal(t, env.manager.ID, env.timesheets.approveReq.ApproverID)
}

func TestLeaveEndpoints(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	env.leaves.err = &leave.BalanceError{LeaveType: leave.LeaveTypeAnnual, Available: 2, Requested: 5}
	rec := env.do(t, http.MethodPost, "/api/v1/leaves/apply", &env.employee, map[string]string{
		"leave_type": "annual",
		"start_date": "2025-03-10",
		"end_date":   "2025-03-14",
		"reason":     "Family trip",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Insufficient annual leave. Available: 2 days.", decodeEnvelope(t, rec).Error.Message)
	assert.Equal(t, env.employee.ID, env.leaves.applyReq.EmployeeID)
	assert.Equal(t, "annual", env.leaves.applyReq.LeaveType)

	env.leaves.err = nil
	env.leaves.result = leave.LeaveResponse{ID: "leave-1", Status: "approved"}
	id := "0190f0c1-0000-7000-8000-000000000077"
	rec = env.do(t, http.MethodPut, "/api/v1/leaves/"+id+"/review", &env.manager, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Leave approved", decodeEnvelope(t, rec).Message)
	assert.Equal(t, id, env.leaves.reviewReq.ID)
	assert.Equal(t, env.manager.ID, env.leaves.reviewReq.ReviewerID)

	env.leaves.err = leave.ErrCannotCancelApproved
	rec = env.do(t, http.MethodPatch, "/api/v1/leaves/"+id+"/cancel", &env.employee, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, env.employee.ID, env.leaves.cancelReq.EmployeeID)

	env.leaves.err = nil
	rec = env.do(t, http.MethodGet, "/api/v1/leaves/my?status=pending&year=2025", &env.employee, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.leaves.myFilter.Year)
	assert.Equal(t, 2025, *env.leaves.myFilter.Year)

	rec = env.do(t, http.MethodGet, "/api/v1/leaves/my?year=last", &env.employee, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAttendanceReportExports(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})
	rows := []report.AttendanceRow{{EmployeeCode: "EMP01001", EmployeeName: "Test employee", Date: "2025-03-03", ClockIn: "09:00", ClockOut: "18:00", Status: "present", IsLate: "No", IsApproved: "No"}}
	env.reports.report = report.AttendanceReport{Summary: report.Summarize("2025-03", rows), Records: rows}

	rec := env.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2025-03&format=CSV&employee_code=emp01001", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="attendance-2025-03.csv"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Employee Code,Name"))
	require.NotNil(t, env.reports.lastReq.EmployeeCode)
	assert.Equal(t, "EMP01001", *env.reports.lastReq.EmployeeCode)

	rec = env.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2025-03&employee_code=1001", &env.manager, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "employee_code")

	rec = env.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2025-03&format=pdf", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = env.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2025-03&format=xlsx", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="attendance-2025-03.xlsx"`, rec.Header().Get("Content-Disposition"))

	rec = env.do(t, http.MethodGet, "/api/v1/reports/attendance?month=2025-03", &env.manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rpt report.AttendanceReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &rpt))
	assert.Equal(t, 1, rpt.Summary.TotalPresent)

	rec = env.do(t, http.MethodGet, "/api/v1/reports/attendance?format=docx", &env.manager, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Details, "format")
}

func TestAdminEmployees(t *testing.T) {
	env := newTestEnv(t, RouterOptions{})

	rec := env.do(t, http.MethodPost, "/api/v1/admin/employees", &env.admin, map[string]string{
		"first_name": "New",
		"last_name":  "Hire",
		"email":      "new.hire@example.com",
		"password":   "welcome1",
		"department": "Sales",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created user.UserResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &created))
	assert.Regexp(t, `^EMP\d{5}$`, created.EmployeeCode)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/employees", &env.admin, map[string]string{
		"first_name": "Dup",
		"last_name":  "Hire",
		"email":      "new.hire@example.com",
		"password":   "welcome1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/employees?department=Sales&is_active=true", &env.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list struct {
		TotalCount int64 `json:"total_count"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &list))
	assert.Equal(t, int64(1), list.TotalCount)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/departments", &env.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var departments struct {
		Departments []string `json:"departments"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &departments))
	assert.Equal(t, []string{"Engineering", "Sales"}, departments.Departments)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/employees/"+env.admin.ID, &env.admin, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/admin/employees/"+created.ID, &env.admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/v1/admin/employees/"+created.ID, &env.admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/admin/employees/0190f0c1-0000-7000-8000-0000000fffff", &env.admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRateLimit(t *testing.T) {
	env := newTestEnv(t, RouterOptions{
		APILimiter:  middleware.NewIPRateLimiter(100, time.Hour),
		AuthLimiter: middleware.NewIPRateLimiter(2, time.Hour),
	})
	creds := map[string]string{"email": "employee@example.com", "password": "wrong-password"}

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/v1/auth/login", nil, creds).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/api/v1/auth/login", nil, creds).Code)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", nil, creds)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Too many login attempts, please try again later.", decodeEnvelope(t, rec).Error.Message)

	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/v1/timesheet/today", &env.employee, nil).Code)
}
