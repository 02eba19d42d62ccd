package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimesheetFilter_EmployeeCode(t *testing.T) {
	code := "emp01002"
	f := TimesheetFilter{EmployeeCode: &code}
	require.NoError(t, f.Validate())
	assert.Equal(t, "EMP01002", *f.EmployeeCode)

	bad := "E-1002"
	f = TimesheetFilter{EmployeeCode: &bad}
	err := f.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee_code")

	empty := ""
	f = TimesheetFilter{EmployeeCode: &empty}
	assert.NoError(t, f.Validate())
}
