package employee

import (
	"time"

	"gorm.io/gorm"
)

// Employee is the directory entry for a member of staff. Soft delete runs
// through gorm.DeletedAt so every query built on this model excludes deleted
// rows; bypassing the filter requires an explicit Unscoped call, which this
// system never makes.
type Employee struct {
	ID          int64          `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Age         int            `json:"age" gorm:"not null"`
	Designation string         `json:"designation" gorm:"not null"`
	HiringDate  string         `json:"hiring_date" gorm:"column:hiring_date;type:date;not null"`
	DateOfBirth string         `json:"date_of_birth" gorm:"column:date_of_birth;type:date;not null"`
	Salary      float64        `json:"salary" gorm:"not null"`
	PhotoPath   *string        `json:"photo_path" gorm:"column:photo_path"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// ListParams are the normalized query parameters for the paginated listing.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
