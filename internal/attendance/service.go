package attendance

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
)

// Repository defines the attendance persistence operations.
type Repository interface {
	List(filters ListFilters) ([]*Attendance, int64, error)
	GetByID(id int64) (*Attendance, error)
	Upsert(att *Attendance) (*Attendance, error)
	Update(id int64, updates map[string]interface{}) error
	Delete(id int64) error
	MonthlyReport(from, to string, employeeID *int64) ([]*ReportRow, error)
}

// EmployeeDirectory answers whether an employee is active. Soft-deleted
// employees do not exist as far as attendance is concerned.
type EmployeeDirectory interface {
	Exists(id int64) (bool, error)
}

type Service struct {
	repo      Repository
	directory EmployeeDirectory
	logger    *slog.Logger
}

func NewService(repo Repository, directory EmployeeDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		logger:    logger,
	}
}

func (s *Service) List(filters ListFilters) ([]*Attendance, int64, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 10
	}

	records, total, err := s.repo.List(filters)
	if err != nil {
		s.logger.Error("failed to list attendance", "error", err)
		return nil, 0, internal.NewInternalError(err)
	}

	return records, total, nil
}

func (s *Service) GetByID(id int64) (*Attendance, error) {
	att, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get attendance", "id", id, "error", err)
		return nil, internal.NewInternalError(err)
	}
	return att, nil
}

// Create records a check-in. A second check-in for the same employee and
// date overwrites the stored time instead of failing.
func (s *Service) Create(dto CreateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.directory.Exists(dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to check employee existence", "employee_id", dto.EmployeeID, "error", err)
		return nil, internal.NewInternalError(err)
	}
	if !exists {
		return nil, internal.ErrEmployeeNotFound
	}

	att, err := s.repo.Upsert(dto.ToModel())
	if err != nil {
		s.logger.Error("failed to record attendance", "employee_id", dto.EmployeeID, "date", dto.Date, "error", err)
		return nil, internal.NewInternalError(err)
	}

	return att, nil
}

func (s *Service) Update(id int64, dto UpdateAttendanceDTO) (*Attendance, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(id, dto.ToUpdates()); err != nil {
		s.logger.Error("failed to update attendance", "id", id, "error", err)
		return nil, internal.NewInternalError(err)
	}

	return s.GetByID(id)
}

func (s *Service) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete attendance", "id", id, "error", err)
		return internal.NewInternalError(err)
	}

	return nil
}

// MonthlyReport aggregates per-employee presence and lateness for one
// calendar month. A check-in strictly after 09:45:00 counts as late.
func (s *Service) MonthlyReport(month string, employeeID *int64) ([]*ReportRow, error) {
	if err := ValidateMonth(month); err != nil {
		return nil, err
	}

	from, to := MonthBounds(month)

	rows, err := s.repo.MonthlyReport(from, to, employeeID)
	if err != nil {
		s.logger.Error("failed to build attendance report", "month", month, "error", err)
		return nil, internal.NewInternalError(err)
	}

	return rows, nil
}
