package postgres

import (
	"strings"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
// The model's gorm.DeletedAt field keeps every query here scoped to active
// rows; no method bypasses it.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

// List retrieves one page of active employees ordered by ascending id,
// plus the pre-pagination total. Search matches name case-insensitively
// as a substring.
func (r *EmployeeRepository) List(params employee.ListParams) ([]*employee.Employee, int64, error) {
	query := r.db.Model(&employee.Employee{})

	if params.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []*employee.Employee
	err := query.
		Order("id ASC").
		Limit(params.Limit).
		Offset(params.Offset()).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

// Exists reports whether an active employee with the given id exists.
func (r *EmployeeRepository) Exists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&employee.Employee{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *EmployeeRepository) Create(emp *employee.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(id int64, updates map[string]interface{}) error {
	return r.db.Model(&employee.Employee{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// SoftDelete sets deleted_at; the row stays behind for historical joins.
func (r *EmployeeRepository) SoftDelete(id int64) error {
	return r.db.Delete(&employee.Employee{}, id).Error
}
