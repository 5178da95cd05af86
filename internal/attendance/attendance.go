package attendance

import "time"

// Attendance is one check-in record. A single row exists per employee per
// date; repeated check-ins overwrite the time instead of creating new rows.
type Attendance struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	EmployeeID  int64     `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date        string    `json:"date" gorm:"type:date;not null;uniqueIndex:idx_attendance_employee_date"`
	CheckInTime string    `json:"check_in_time" gorm:"type:time;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// ReportRow is one employee's line in the monthly attendance report.
// Employees soft-deleted from the directory never appear.
type ReportRow struct {
	EmployeeID  int64  `json:"employee_id"`
	Name        string `json:"name"`
	DaysPresent int    `json:"days_present"`
	TimesLate   int    `json:"times_late"`
}

// ListFilters narrow the attendance listing. All present filters are
// combined; Date and the From/To range may overlap, the intersection wins.
type ListFilters struct {
	EmployeeID *int64
	Date       string
	From       string
	To         string
	Page       int
	Limit      int
}

func (f ListFilters) Offset() int {
	return (f.Page - 1) * f.Limit
}
