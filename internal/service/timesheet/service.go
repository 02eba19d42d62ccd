package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
)

type TimesheetServiceImpl struct {
	db database.Transactor
	timesheet.TimesheetRepository
	user.UserRepository
	loc *time.Location
	now func() time.Time
}

func NewTimesheetService(db database.Transactor, timesheetRepository timesheet.TimesheetRepository, userRepository user.UserRepository, loc *time.Location) timesheet.TimesheetService {
	if loc == nil {
		loc = time.UTC
	}
	return &TimesheetServiceImpl{
		db:                  db,
		TimesheetRepository: timesheetRepository,
		UserRepository:      userRepository,
		loc:                 loc,
		now:                 time.Now,
	}
}

// ClockIn implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ClockIn(ctx context.Context, req timesheet.ClockInRequest) (timesheet.TimesheetResponse, error) {
	now := s.now()

	employee, err := s.UserRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !employee.IsActive {
		return timesheet.TimesheetResponse{}, user.ErrAccountInactive
	}

	scheduledStart, err := employee.WorkSchedule.StartOn(now.In(s.loc))
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	isLate, lateBy := timesheet.EvaluateLateness(now, scheduledStart)

	status := timesheet.StatusPresent
	if isLate {
		status = timesheet.StatusLate
	}

	var ip *string
	if req.IPAddress != "" {
		ip = &req.IPAddress
	}

	record, err := s.TimesheetRepository.ClockIn(ctx, timesheet.ClockInParams{
		EmployeeID:    employee.ID,
		WorkDate:      timesheet.DateOf(now, s.loc),
		ClockIn:       now,
		Status:        status,
		IsLate:        isLate,
		LateByMinutes: lateBy,
		IPAddress:     ip,
	})
	if err != nil {
		if errors.Is(err, timesheet.ErrAlreadyClockedIn) {
			return timesheet.TimesheetResponse{}, err
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to clock in: %w", err)
	}

	slog.Info("employee clocked in",
		"employee_id", employee.ID,
		"work_date", record.WorkDate.Format("2006-01-02"),
		"late_by_minutes", lateBy,
	)

	return timesheet.ToResponse(record), nil
}

// StartBreak implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) StartBreak(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	record, err := s.mutateToday(ctx, employeeID, timesheet.ErrNoActiveSession, func(t *timesheet.Timesheet, now time.Time) error {
		return t.StartBreak(now)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(record), nil
}

// EndBreak implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) EndBreak(ctx context.Context, employeeID string) (timesheet.TimesheetResponse, error) {
	record, err := s.mutateToday(ctx, employeeID, timesheet.ErrNotOnBreak, func(t *timesheet.Timesheet, now time.Time) error {
		_, err := t.EndBreak(now)
		return err
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}
	return timesheet.ToResponse(record), nil
}

// ClockOut implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ClockOut(ctx context.Context, req timesheet.ClockOutRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	record, err := s.mutateToday(ctx, req.EmployeeID, timesheet.ErrNotClockedIn, func(t *timesheet.Timesheet, now time.Time) error {
		return t.ClockOutAt(now, req.Notes)
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	slog.Info("employee clocked out",
		"employee_id", req.EmployeeID,
		"total_work_minutes", record.TotalWorkMinutes,
		"overtime_minutes", record.OvertimeMinutes,
	)

	return timesheet.ToResponse(record), nil
}

// mutateToday locks today's record, applies fn and saves the result in one
// transaction. missing is returned when no record exists for today.
func (s *TimesheetServiceImpl) mutateToday(ctx context.Context, employeeID string, missing error, fn func(t *timesheet.Timesheet, now time.Time) error) (timesheet.Timesheet, error) {
	var updated timesheet.Timesheet

	err := s.db.WithinTx(ctx, func(ctx context.Context) error {
		now := s.now()

		record, err := s.TimesheetRepository.GetByEmployeeAndDateForUpdate(ctx, employeeID, timesheet.DateOf(now, s.loc))
		if err != nil {
			if errors.Is(err, timesheet.ErrRecordNotFound) {
				return missing
			}
			return fmt.Errorf("failed to get today's timesheet: %w", err)
		}

		if err := fn(&record, now); err != nil {
			return err
		}

		updated, err = s.TimesheetRepository.Update(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to update timesheet: %w", err)
		}
		return nil
	})

	return updated, err
}

// GetToday implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetToday(ctx context.Context, employeeID string) (timesheet.TodayResponse, error) {
	today := timesheet.DateOf(s.now(), s.loc)
	resp := timesheet.TodayResponse{Date: today.Format("2006-01-02")}

	record, err := s.TimesheetRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		if errors.Is(err, timesheet.ErrRecordNotFound) {
			return resp, nil
		}
		return timesheet.TodayResponse{}, fmt.Errorf("failed to get today's timesheet: %w", err)
	}

	r := timesheet.ToResponse(record)
	resp.Record = &r
	return resp, nil
}

// GetMyTimesheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyTimesheets(ctx context.Context, filter timesheet.MyTimesheetFilter) (timesheet.MyTimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.MyTimesheetResponse{}, err
	}

	month := s.now().In(s.loc)
	if filter.Month != "" {
		month, _ = validator.IsValidMonth(filter.Month)
	}
	from, to := timesheet.MonthRange(month)

	records, err := s.TimesheetRepository.ListByEmployee(ctx, filter.EmployeeID, from, to)
	if err != nil {
		return timesheet.MyTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	// Stats cover the whole month; only the records are paged.
	stats := timesheet.ComputeStats(records)

	total := int64(len(records))
	start := min((filter.Page-1)*filter.Limit, len(records))
	end := min(start+filter.Limit, len(records))

	page := make([]timesheet.TimesheetResponse, 0, end-start)
	for _, r := range records[start:end] {
		page = append(page, timesheet.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return timesheet.MyTimesheetResponse{
		Month:      from.Format("2006-01"),
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Stats:      stats,
		Records:    page,
	}, nil
}

// ListTimesheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListTimesheetResponse{}, err
	}

	records, total, err := s.TimesheetRepository.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	responses := make([]timesheet.TimesheetResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, timesheet.ToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return timesheet.ListTimesheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    responses,
	}, nil
}

// Approve implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Approve(ctx context.Context, req timesheet.ApproveRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	record, err := s.TimesheetRepository.Approve(ctx, req.ID, req.ApproverID)
	if err != nil {
		if errors.Is(err, timesheet.ErrRecordNotFound) {
			return timesheet.TimesheetResponse{}, err
		}
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to approve timesheet: %w", err)
	}

	slog.Info("timesheet approved", "timesheet_id", record.ID, "approved_by", req.ApproverID)

	return timesheet.ToResponse(record), nil
}
