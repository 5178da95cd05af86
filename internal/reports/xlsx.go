package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// AttendanceRow is one line of the exported monthly attendance report.
type AttendanceRow struct {
	EmployeeID  int64
	Name        string
	DaysPresent int
	TimesLate   int
}

var attendanceHeaders = []string{"Employee ID", "Name", "Days Present", "Times Late"}

// WriteAttendanceXLSX renders the monthly report as a single-sheet xlsx
// workbook and writes it to w.
func WriteAttendanceXLSX(w io.Writer, month string, rows []AttendanceRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance " + month
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create report sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	for col, header := range attendanceHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header %s: %w", header, err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.EmployeeID, row.Name, row.DaysPresent, row.TimesLate}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write report row %d: %w", i+1, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
