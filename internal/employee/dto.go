package employee

import (
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/validation"
)

// CreateEmployeeDTO carries the recognized fields for employee creation.
// Unrecognized body fields are dropped during decoding, not rejected.
// Age and Salary are pointers so a present zero trips the range rule
// rather than the required one.
type CreateEmployeeDTO struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Age         *int     `json:"age" validate:"required,gte=18,lte=65"`
	Designation string   `json:"designation" validate:"required,min=2,max=100"`
	HiringDate  string   `json:"hiring_date" validate:"required,datetime=2006-01-02"`
	DateOfBirth string   `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Salary      *float64 `json:"salary" validate:"required,gt=0"`
	PhotoPath   *string  `json:"-"`
}

var createEmployeeMessages = map[string]string{
	"Name.required":        "Employee name is required",
	"Name.min":             "Name must be at least 2 characters",
	"Name.max":             "Name must be at most 100 characters",
	"Age.required":         "Age is required",
	"Age.gte":              "Employee must be at least 18 years old",
	"Age.lte":              "Employee must be at most 65 years old",
	"Designation.required": "Designation is required",
	"Designation.min":      "Designation must be at least 2 characters",
	"Designation.max":      "Designation must be at most 100 characters",
	"HiringDate.required":  "Hiring date is required",
	"HiringDate.datetime":  "Hiring date must be in YYYY-MM-DD format",
	"DateOfBirth.required": "Date of birth is required",
	"DateOfBirth.datetime": "Date of birth must be in YYYY-MM-DD format",
	"Salary.required":      "Salary is required",
	"Salary.gt":            "Salary must be a positive number",
}

func (dto CreateEmployeeDTO) Validate() error {
	if err := validation.Struct(dto, createEmployeeMessages); err != nil {
		return err
	}
	return nil
}

// ToModel assumes Validate has run, so Age and Salary are non-nil.
func (dto CreateEmployeeDTO) ToModel() *Employee {
	return &Employee{
		Name:        dto.Name,
		Age:         *dto.Age,
		Designation: dto.Designation,
		HiringDate:  dto.HiringDate,
		DateOfBirth: dto.DateOfBirth,
		Salary:      *dto.Salary,
		PhotoPath:   dto.PhotoPath,
	}
}

// UpdateEmployeeDTO carries a partial update. Every field is optional, but
// at least one recognized field must be present unless the request only
// replaces the photo.
type UpdateEmployeeDTO struct {
	Name        *string  `json:"name" validate:"omitempty,min=2,max=100"`
	Age         *int     `json:"age" validate:"omitempty,gte=18,lte=65"`
	Designation *string  `json:"designation" validate:"omitempty,min=2,max=100"`
	HiringDate  *string  `json:"hiring_date" validate:"omitempty,datetime=2006-01-02"`
	DateOfBirth *string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Salary      *float64 `json:"salary" validate:"omitempty,gt=0"`
	PhotoPath   *string  `json:"-"`
}

var updateEmployeeMessages = map[string]string{
	"Name.min":             "Name must be at least 2 characters",
	"Name.max":             "Name must be at most 100 characters",
	"Age.gte":              "Employee must be at least 18 years old",
	"Age.lte":              "Employee must be at most 65 years old",
	"Designation.min":      "Designation must be at least 2 characters",
	"Designation.max":      "Designation must be at most 100 characters",
	"HiringDate.datetime":  "Hiring date must be in YYYY-MM-DD format",
	"DateOfBirth.datetime": "Date of birth must be in YYYY-MM-DD format",
	"Salary.gt":            "Salary must be a positive number",
}

func (dto UpdateEmployeeDTO) Validate() error {
	if !dto.HasFields() && dto.PhotoPath == nil {
		return internal.NewValidationError("At least one field must be provided")
	}
	if err := validation.Struct(dto, updateEmployeeMessages); err != nil {
		return err
	}
	return nil
}

// HasFields reports whether any recognized field besides the photo is set.
func (dto UpdateEmployeeDTO) HasFields() bool {
	return dto.Name != nil || dto.Age != nil || dto.Designation != nil ||
		dto.HiringDate != nil || dto.DateOfBirth != nil || dto.Salary != nil
}

// ToUpdates builds the column assignment set for the partial update.
func (dto UpdateEmployeeDTO) ToUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Age != nil {
		updates["age"] = *dto.Age
	}
	if dto.Designation != nil {
		updates["designation"] = *dto.Designation
	}
	if dto.HiringDate != nil {
		updates["hiring_date"] = *dto.HiringDate
	}
	if dto.DateOfBirth != nil {
		updates["date_of_birth"] = *dto.DateOfBirth
	}
	if dto.Salary != nil {
		updates["salary"] = *dto.Salary
	}
	if dto.PhotoPath != nil {
		updates["photo_path"] = *dto.PhotoPath
	}
	updates["updated_at"] = time.Now()
	return updates
}
