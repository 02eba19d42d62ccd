package http

import (
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	GetMyLeaves(w http.ResponseWriter, r *http.Request)
	ListLeaves(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
	}
}

// Apply handles POST /leaves/apply
func (l *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req leave.ApplyLeaveRequest
	if !decodeJSON(w, r, "ApplyLeave", &req) {
		return
	}
	req.EmployeeID = employeeID

	created, err := l.leaveService.Apply(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave application submitted", created)
}

// GetMyLeaves handles GET /leaves/my?status=&year=
func (l *LeaveHandlerImpl) GetMyLeaves(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	filter := leave.MyLeaveFilter{
		EmployeeID: employeeID,
		Status:     queryString(r, "status"),
	}
	if r.URL.Query().Get("year") != "" {
		year, err := queryInt(r, "year")
		if err != nil {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		filter.Year = &year
	}

	result, err := l.leaveService.GetMyLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListLeaves handles GET /leaves/all
func (l *LeaveHandlerImpl) ListLeaves(w http.ResponseWriter, r *http.Request) {
	page, limit, ok := queryPaging(w, r)
	if !ok {
		return
	}

	filter := leave.LeaveFilter{
		Status:     queryString(r, "status"),
		Department: queryString(r, "department"),
		LeaveType:  queryString(r, "leave_type"),
		Page:       page,
		Limit:      limit,
	}

	result, err := l.leaveService.ListLeaves(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Review handles PUT /leaves/{id}/review
func (l *LeaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	reviewerID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req leave.ReviewLeaveRequest
	if !decodeJSON(w, r, "ReviewLeave", &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ReviewerID = reviewerID

	reviewed, err := l.leaveService.Review(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave "+reviewed.Status, reviewed)
}

// Cancel handles PATCH /leaves/{id}/cancel
func (l *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	cancelled, err := l.leaveService.Cancel(r.Context(), leave.CancelLeaveRequest{
		ID:         chi.URLParam(r, "id"),
		EmployeeID: employeeID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave cancelled", cancelled)
}
