package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	ListDepartments(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	employeeService employee.EmployeeService
}

func NewEmployeeHandler(employeeService employee.EmployeeService) EmployeeHandler {
	return &EmployeeHandlerImpl{
		employeeService: employeeService,
	}
}

// List handles GET /admin/employees
func (e *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := queryPaging(w, r)
	if !ok {
		return
	}
	isActive, err := queryBool(r, "is_active")
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	filter := employee.EmployeeFilter{
		Department: queryString(r, "department"),
		Role:       queryString(r, "role"),
		IsActive:   isActive,
		Search:     queryString(r, "search"),
		Page:       page,
		Limit:      limit,
	}

	result, err := e.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get handles GET /admin/employees/{id}
func (e *EmployeeHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	emp, err := e.employeeService.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, emp)
}

// Create handles POST /admin/employees
func (e *EmployeeHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if !decodeJSON(w, r, "CreateEmployee", &req) {
		return
	}

	created, err := e.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", created)
}

// Update handles PUT /admin/employees/{id}
func (e *EmployeeHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if !decodeJSON(w, r, "UpdateEmployee", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := e.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", updated)
}

// Deactivate handles DELETE /admin/employees/{id}
func (e *EmployeeHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	if err := e.employeeService.DeactivateEmployee(r.Context(), chi.URLParam(r, "id"), actorID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", nil)
}

// ResetPassword handles POST /admin/employees/{id}/reset-password
func (e *EmployeeHandlerImpl) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req employee.ResetPasswordRequest
	if !decodeJSON(w, r, "ResetPassword", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := e.employeeService.ResetPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password reset successfully", nil)
}

// ListDepartments handles GET /admin/departments
func (e *EmployeeHandlerImpl) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := e.employeeService.ListDepartments(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string][]string{"departments": departments})
}
