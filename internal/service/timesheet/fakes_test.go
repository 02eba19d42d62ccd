package timesheet

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeUserRepo only serves lookups by id; other methods panic via the nil embed.
type fakeUserRepo struct {
	user.UserRepository
	users map[string]user.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

type fakeTimesheetRepo struct {
	records map[string]timesheet.Timesheet
	seq     int
}

func newFakeTimesheetRepo() *fakeTimesheetRepo {
	return &fakeTimesheetRepo{records: map[string]timesheet.Timesheet{}}
}

func (f *fakeTimesheetRepo) find(employeeID string, workDate time.Time) (timesheet.Timesheet, bool) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.WorkDate.Equal(workDate) {
			return r, true
		}
	}
	return timesheet.Timesheet{}, false
}

func (f *fakeTimesheetRepo) ClockIn(ctx context.Context, p timesheet.ClockInParams) (timesheet.Timesheet, error) {
	record, ok := f.find(p.EmployeeID, p.WorkDate)
	if ok && record.ClockIn != nil {
		return timesheet.Timesheet{}, timesheet.ErrAlreadyClockedIn
	}
	if !ok {
		f.seq++
		record = timesheet.Timesheet{
			ID:         fmt.Sprintf("ts-%d", f.seq),
			EmployeeID: p.EmployeeID,
			WorkDate:   p.WorkDate,
			Breaks:     []timesheet.Break{},
		}
	}
	clockIn := p.ClockIn
	record.ClockIn = &clockIn
	record.Status = p.Status
	record.IsLate = p.IsLate
	record.LateByMinutes = p.LateByMinutes
	record.IPAddress = p.IPAddress
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeTimesheetRepo) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	r, ok := f.records[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeTimesheetRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (timesheet.Timesheet, error) {
	r, ok := f.find(employeeID, workDate)
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}
	return r, nil
}

func (f *fakeTimesheetRepo) GetByEmployeeAndDateForUpdate(ctx context.Context, employeeID string, workDate time.Time) (timesheet.Timesheet, error) {
	r, err := f.GetByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		return r, err
	}
	r.Breaks = append([]timesheet.Break(nil), r.Breaks...)
	return r, nil
}

func (f *fakeTimesheetRepo) Update(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	if _, ok := f.records[t.ID]; !ok {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}
	f.records[t.ID] = t
	return t, nil
}

func (f *fakeTimesheetRepo) Approve(ctx context.Context, id string, approverID string) (timesheet.Timesheet, error) {
	r, ok := f.records[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrRecordNotFound
	}
	r.IsApproved = true
	r.ApprovedBy = &approverID
	f.records[id] = r
	return r, nil
}

func (f *fakeTimesheetRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]timesheet.Timesheet, error) {
	var out []timesheet.Timesheet
	for _, r := range f.records {
		if r.EmployeeID == employeeID && !r.WorkDate.Before(from) && !r.WorkDate.After(to) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate.After(out[j].WorkDate) })
	return out, nil
}

func (f *fakeTimesheetRepo) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	var out []timesheet.Timesheet
	for _, r := range f.records {
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.DateFrom != nil && r.WorkDate.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && r.WorkDate.After(*filter.DateTo) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WorkDate.After(out[j].WorkDate) })

	total := int64(len(out))
	start := min((filter.Page-1)*filter.Limit, len(out))
	end := min(start+filter.Limit, len(out))
	return out[start:end], total, nil
}
