package report

import (
	"sort"
	"strconv"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
)

// BuildRows flattens timesheets into report rows, formatting clock times in loc.
func BuildRows(records []timesheet.Timesheet, loc *time.Location) []AttendanceRow {
	rows := make([]AttendanceRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, AttendanceRow{
			EmployeeCode:    deref(r.EmployeeCode),
			EmployeeName:    deref(r.EmployeeName),
			Department:      deref(r.Department),
			Date:            r.WorkDate.Format("2006-01-02"),
			ClockIn:         clock(r.ClockIn, loc),
			ClockOut:        clock(r.ClockOut, loc),
			TotalWorkHours:  r.TotalWorkHours,
			BreakMinutes:    r.TotalBreakMinutes,
			OvertimeMinutes: r.OvertimeMinutes,
			Status:          string(r.Status),
			IsLate:          yesNo(r.IsLate),
			LateByMinutes:   r.LateByMinutes,
			IsApproved:      yesNo(r.IsApproved),
		})
	}
	return rows
}

// Summarize counts rows by status and averages worked hours. The average is 0 for no rows.
func Summarize(month string, rows []AttendanceRow) AttendanceSummary {
	s := AttendanceSummary{Month: month, TotalRecords: len(rows)}

	var hours float64
	for _, row := range rows {
		switch timesheet.Status(row.Status) {
		case timesheet.StatusPresent, timesheet.StatusLate:
			s.TotalPresent++
		case timesheet.StatusAbsent:
			s.TotalAbsent++
		case timesheet.StatusOnLeave:
			s.TotalOnLeave++
		}
		if row.IsLate == "Yes" {
			s.TotalLate++
		}
		hours += row.TotalWorkHours
	}

	if len(rows) > 0 {
		s.AvgWorkHours = timesheet.Round2(hours / float64(len(rows)))
	}
	return s
}

// SummarizeMonth computes month-to-date averages over all records of the month.
func SummarizeMonth(records []timesheet.Timesheet) MonthSummary {
	var m MonthSummary
	if len(records) == 0 {
		return m
	}

	var hours float64
	overtime := 0
	for _, r := range records {
		hours += r.TotalWorkHours
		overtime += r.OvertimeMinutes
		if r.IsLate {
			m.LateCount++
		}
	}
	m.AvgWorkHours = timesheet.Round2(hours / float64(len(records)))
	m.TotalOvertimeHours = timesheet.Round2(float64(overtime) / 60)
	return m
}

// SummarizeToday counts present and active sessions among today's records and
// groups them by department, sorted by department name.
func SummarizeToday(records []timesheet.Timesheet) (present, active int64, departments []DepartmentStat) {
	byDept := make(map[string]*DepartmentStat)
	for _, r := range records {
		if r.Status.IsPresent() {
			present++
		}
		if r.IsActive() {
			active++
		}

		dept := deref(r.Department)
		stat, ok := byDept[dept]
		if !ok {
			stat = &DepartmentStat{Department: dept}
			byDept[dept] = stat
		}
		stat.Count++
		if r.Status.IsPresent() {
			stat.Present++
		}
	}

	departments = make([]DepartmentStat, 0, len(byDept))
	for _, stat := range byDept {
		departments = append(departments, *stat)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Department < departments[j].Department
	})
	return present, active, departments
}

// Headers lists the export columns in row order.
var Headers = []string{
	"Employee Code", "Name", "Department", "Date", "Clock In", "Clock Out",
	"Hours", "Break (min)", "Overtime (min)", "Status", "Late", "Late By (min)", "Approved",
}

// Record renders the row as strings in Headers order.
func (r AttendanceRow) Record() []string {
	return []string{
		r.EmployeeCode,
		r.EmployeeName,
		r.Department,
		r.Date,
		r.ClockIn,
		r.ClockOut,
		strconv.FormatFloat(r.TotalWorkHours, 'f', -1, 64),
		strconv.Itoa(r.BreakMinutes),
		strconv.Itoa(r.OvertimeMinutes),
		r.Status,
		r.IsLate,
		strconv.Itoa(r.LateByMinutes),
		r.IsApproved,
	}
}

func clock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "-"
	}
	return t.In(loc).Format("15:04")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
