package attendance

import (
	"regexp"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/validation"
)

var (
	checkInTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:[0-5]\d)?$`)
	monthPattern       = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// NormalizeCheckInTime pads HH:MM to HH:MM:SS so stored values compare
// consistently. Input must already match checkInTimePattern.
func NormalizeCheckInTime(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

// CreateAttendanceDTO records a check-in for an employee on a date.
type CreateAttendanceDTO struct {
	EmployeeID  int64  `json:"employee_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	CheckInTime string `json:"check_in_time" validate:"required"`
}

var createAttendanceMessages = map[string]string{
	"EmployeeID.required":  "Employee ID is required",
	"EmployeeID.gt":        "Employee ID must be a positive number",
	"Date.required":        "Date is required",
	"Date.datetime":        "Date must be in YYYY-MM-DD format",
	"CheckInTime.required": "Check-in time is required",
}

func (dto CreateAttendanceDTO) Validate() error {
	if err := validation.Struct(dto, createAttendanceMessages); err != nil {
		return err
	}
	if !checkInTimePattern.MatchString(dto.CheckInTime) {
		return internal.NewValidationError("Check-in time must be in HH:MM or HH:MM:SS format")
	}
	return nil
}

func (dto CreateAttendanceDTO) ToModel() *Attendance {
	return &Attendance{
		EmployeeID:  dto.EmployeeID,
		Date:        dto.Date,
		CheckInTime: NormalizeCheckInTime(dto.CheckInTime),
	}
}

// UpdateAttendanceDTO corrects an existing record: any subset of the
// employee reference, the date and the check-in time.
type UpdateAttendanceDTO struct {
	EmployeeID  *int64  `json:"employee_id" validate:"omitempty,gt=0"`
	Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	CheckInTime *string `json:"check_in_time"`
}

var updateAttendanceMessages = map[string]string{
	"EmployeeID.gt": "Employee ID must be a positive number",
	"Date.datetime": "Date must be in YYYY-MM-DD format",
}

func (dto UpdateAttendanceDTO) Validate() error {
	if dto.EmployeeID == nil && dto.Date == nil && dto.CheckInTime == nil {
		return internal.NewValidationError("At least one field must be provided")
	}
	if err := validation.Struct(dto, updateAttendanceMessages); err != nil {
		return err
	}
	if dto.CheckInTime != nil && !checkInTimePattern.MatchString(*dto.CheckInTime) {
		return internal.NewValidationError("Check-in time must be in HH:MM or HH:MM:SS format")
	}
	return nil
}

// ToUpdates builds the column assignment set for the partial update.
func (dto UpdateAttendanceDTO) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if dto.EmployeeID != nil {
		updates["employee_id"] = *dto.EmployeeID
	}
	if dto.Date != nil {
		updates["date"] = *dto.Date
	}
	if dto.CheckInTime != nil {
		updates["check_in_time"] = NormalizeCheckInTime(*dto.CheckInTime)
	}
	updates["updated_at"] = time.Now()
	return updates
}

// ValidateMonth checks the YYYY-MM report month parameter.
func ValidateMonth(month string) error {
	if month == "" {
		return internal.NewValidationError("Month is required")
	}
	if !monthPattern.MatchString(month) {
		return internal.NewValidationError("Month must be in YYYY-MM format")
	}
	return nil
}

// MonthBounds returns the inclusive first and last dates of a YYYY-MM month.
func MonthBounds(month string) (string, string) {
	t, _ := time.Parse("2006-01", month)
	first := t.Format("2006-01-02")
	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
	return first, last
}
