package leave

import "time"

type LeaveType string

const (
	LeaveTypeAnnual      LeaveType = "annual"
	LeaveTypeSick        LeaveType = "sick"
	LeaveTypeCasual      LeaveType = "casual"
	LeaveTypeUnpaid      LeaveType = "unpaid"
	LeaveTypeMaternity   LeaveType = "maternity"
	LeaveTypePaternity   LeaveType = "paternity"
	LeaveTypeBereavement LeaveType = "bereavement"
)

var ValidLeaveTypes = []string{
	string(LeaveTypeAnnual),
	string(LeaveTypeSick),
	string(LeaveTypeCasual),
	string(LeaveTypeUnpaid),
	string(LeaveTypeMaternity),
	string(LeaveTypePaternity),
	string(LeaveTypeBereavement),
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var ValidStatuses = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusRejected),
	string(StatusCancelled),
}

type HalfDayType string

const (
	HalfDayMorning   HalfDayType = "morning"
	HalfDayAfternoon HalfDayType = "afternoon"
)

type Leave struct {
	ID          string
	EmployeeID  string
	LeaveType   LeaveType
	StartDate   time.Time
	EndDate     time.Time
	TotalDays   float64
	IsHalfDay   bool
	HalfDayType *HalfDayType
	Reason      string
	Status      Status
	ReviewedBy  *string
	ReviewedAt  *time.Time
	ReviewNote  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeCode *string
	EmployeeName *string
	Department   *string
	ReviewerName *string
}
