package user

type Permission string

const (
	// Self service
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Timesheets
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetClock   Permission = "timesheet.clock"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Leave
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Employee administration
	PermissionEmployeeManage Permission = "employee.manage"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionTimesheetViewOwn,
	PermissionTimesheetClock,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
}

var managerPermissions = append(append([]Permission{}, employeePermissions...),
	PermissionTimesheetViewAll,
	PermissionTimesheetApprove,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionReportsView,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    append(append([]Permission{}, managerPermissions...), PermissionEmployeeManage),
	RoleManager:  managerPermissions,
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
