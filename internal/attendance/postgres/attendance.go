package postgres

import (
	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttendanceRepository implements attendance.Repository using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.Repository {
	return &AttendanceRepository{db: db}
}

// List retrieves one page of attendance records, newest date first. All
// present filters are ANDed together.
func (r *AttendanceRepository) List(filters attendance.ListFilters) ([]*attendance.Attendance, int64, error) {
	query := r.db.Model(&attendance.Attendance{})

	if filters.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filters.EmployeeID)
	}
	if filters.Date != "" {
		query = query.Where("date = ?", filters.Date)
	}
	if filters.From != "" {
		query = query.Where("date >= ?", filters.From)
	}
	if filters.To != "" {
		query = query.Where("date <= ?", filters.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []*attendance.Attendance
	err := query.
		Order("date DESC").
		Limit(filters.Limit).
		Offset(filters.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *AttendanceRepository) GetByID(id int64) (*attendance.Attendance, error) {
	var att attendance.Attendance
	err := r.db.Where("id = ?", id).First(&att).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrAttendanceNotFound
		}
		return nil, err
	}
	return &att, nil
}

// Upsert inserts the check-in, or overwrites check_in_time when a row for
// the same employee and date already exists. The surviving row is returned.
func (r *AttendanceRepository) Upsert(att *attendance.Attendance) (*attendance.Attendance, error) {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"check_in_time": att.CheckInTime,
			"updated_at":    gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(att).Error
	if err != nil {
		return nil, err
	}

	// The conflict path leaves att.ID at the insert attempt's value, so
	// re-read by the natural key.
	var saved attendance.Attendance
	err = r.db.Where("employee_id = ? AND date = ?", att.EmployeeID, att.Date).First(&saved).Error
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

func (r *AttendanceRepository) Update(id int64, updates map[string]interface{}) error {
	return r.db.Model(&attendance.Attendance{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *AttendanceRepository) Delete(id int64) error {
	return r.db.Delete(&attendance.Attendance{}, id).Error
}

// MonthlyReport aggregates days present and late check-ins per employee for
// the inclusive date range. Soft-deleted employees are excluded even when
// their attendance rows remain.
func (r *AttendanceRepository) MonthlyReport(from, to string, employeeID *int64) ([]*attendance.ReportRow, error) {
	sql := `
		SELECT e.id AS employee_id,
		       e.name AS name,
		       COUNT(*) AS days_present,
		       COUNT(*) FILTER (WHERE a.check_in_time > '09:45:00') AS times_late
		FROM attendance a
		JOIN employees e ON e.id = a.employee_id
		WHERE e.deleted_at IS NULL
		  AND a.date >= ? AND a.date <= ?`
	args := []interface{}{from, to}

	if employeeID != nil {
		sql += ` AND a.employee_id = ?`
		args = append(args, *employeeID)
	}

	sql += `
		GROUP BY e.id, e.name
		ORDER BY e.id ASC`

	var rows []*attendance.ReportRow
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []*attendance.ReportRow{}
	}

	return rows, nil
}
