// Package export renders attendance reports as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/report"
)

// WriteCSV writes the header line followed by one line per row.
func WriteCSV(w io.Writer, rows []report.AttendanceRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Headers); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
