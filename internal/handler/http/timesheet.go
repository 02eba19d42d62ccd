package http

import (
	"net"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	StartBreak(w http.ResponseWriter, r *http.Request)
	EndBreak(w http.ResponseWriter, r *http.Request)

	GetToday(w http.ResponseWriter, r *http.Request)
	GetMyTimesheets(w http.ResponseWriter, r *http.Request)
	ListTimesheets(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// ClockIn implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	record, err := h.timesheetService.ClockIn(r.Context(), timesheet.ClockInRequest{
		EmployeeID: employeeID,
		IPAddress:  remoteIP(r),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, timesheet.ClockInMessage(record), record)
}

// ClockOut implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req timesheet.ClockOutRequest
	if !decodeJSON(w, r, "ClockOut", &req) {
		return
	}
	req.EmployeeID = employeeID

	record, err := h.timesheetService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", record)
}

// StartBreak implements TimesheetHandler.
func (h *TimesheetHandlerImpl) StartBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	record, err := h.timesheetService.StartBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Break started", record)
}

// EndBreak implements TimesheetHandler.
func (h *TimesheetHandlerImpl) EndBreak(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	record, err := h.timesheetService.EndBreak(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, timesheet.BreakEndedMessage(record), record)
}

// GetToday implements TimesheetHandler.
func (h *TimesheetHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	today, err := h.timesheetService.GetToday(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, today)
}

// GetMyTimesheets handles GET /timesheet/my?month=&page=&limit=
func (h *TimesheetHandlerImpl) GetMyTimesheets(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	page, limit, ok := queryPaging(w, r)
	if !ok {
		return
	}

	filter := timesheet.MyTimesheetFilter{
		EmployeeID: employeeID,
		Month:      r.URL.Query().Get("month"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.timesheetService.GetMyTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListTimesheets handles GET /timesheet/all
func (h *TimesheetHandlerImpl) ListTimesheets(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := queryPaging(w, r)
	if !ok {
		return
	}

	filter := timesheet.TimesheetFilter{
		Date:         queryString(r, "date"),
		Month:        queryString(r, "month"),
		EmployeeCode: queryString(r, "employee_code"),
		Department:   queryString(r, "department"),
		Status:       queryString(r, "status"),
		Page:         page,
		Limit:        limit,
	}

	result, err := h.timesheetService.ListTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve handles PUT /timesheet/{id}/approve
func (h *TimesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approverID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	record, err := h.timesheetService.Approve(r.Context(), timesheet.ApproveRequest{
		ID:         chi.URLParam(r, "id"),
		ApproverID: approverID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet approved", record)
}

func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
