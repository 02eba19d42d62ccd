package http

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/export"
)

type ReportHandler interface {
	// Monthly Attendance Report
	GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request)

	// Dashboard Summary
	GetDashboardSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyAttendanceReport handles GET /reports/attendance
func (h *reportHandlerImpl) GetMonthlyAttendanceReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := report.AttendanceReportRequest{
		Month:        r.URL.Query().Get("month"),
		EmployeeCode: queryString(r, "employee_code"),
		Department:   queryString(r, "department"),
		Format:       r.URL.Query().Get("format"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.MonthlyAttendance(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	format := report.Format(req.Format)
	if format == report.FormatJSON {
		response.Success(w, result)
		return
	}

	var (
		buf         bytes.Buffer
		contentType string
	)
	switch format {
	case report.FormatCSV:
		contentType = "text/csv"
		err = export.WriteCSV(&buf, result.Records)
	case report.FormatPDF:
		contentType = "application/pdf"
		err = export.WritePDF(&buf, result)
	case report.FormatXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(&buf, result)
	}
	if err != nil {
		slog.Error("attendance export failed", "format", format, "error", err)
		response.HandleError(w, fmt.Errorf("%w: %v", report.ErrExportFailed, err))
		return
	}

	filename := fmt.Sprintf("attendance-%s.%s", result.Summary.Month, format)
	response.Attachment(w, contentType, filename, buf.Bytes())
}

// GetDashboardSummary handles GET /reports/summary
func (h *reportHandlerImpl) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportService.DashboardSummary(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
