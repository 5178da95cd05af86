package employee

import (
	"log/slog"

	"github.com/frahmantamala/hr-management/internal"
)

// Repository defines the data access methods for the employee directory.
// Every read excludes soft-deleted rows.
type Repository interface {
	List(params ListParams) ([]*Employee, int64, error)
	GetByID(id int64) (*Employee, error)
	Exists(id int64) (bool, error)
	Create(emp *Employee) error
	Update(id int64, updates map[string]interface{}) error
	SoftDelete(id int64) error
}

// Service handles employee directory business logic.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// List returns one page of active employees plus the total count of rows
// matching the filter before pagination.
func (s *Service) List(page, limit int, search string) ([]*Employee, int64, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	params := ListParams{Page: page, Limit: limit, Search: search}
	employees, total, err := s.repo.List(params)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, 0, internal.NewInternalError(err)
	}

	return employees, total, nil
}

func (s *Service) GetByID(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get employee", "id", id, "error", err)
		return nil, internal.NewInternalError(err)
	}
	return emp, nil
}

func (s *Service) Create(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee validation failed", "error", err)
		return nil, err
	}

	emp := dto.ToModel()
	if err := s.repo.Create(emp); err != nil {
		s.logger.Error("failed to create employee", "error", err)
		return nil, internal.NewInternalError(err)
	}

	s.logger.Info("employee created", "employee_id", emp.ID)
	return emp, nil
}

// Update applies a partial update to an active employee and returns the
// updated row.
func (s *Service) Update(id int64, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("employee update validation failed", "error", err, "employee_id", id)
		return nil, err
	}

	if _, err := s.GetByID(id); err != nil {
		return nil, err
	}

	if err := s.repo.Update(id, dto.ToUpdates()); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", id)
		return nil, internal.NewInternalError(err)
	}

	emp, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", "employee_id", id)
	return emp, nil
}

// Delete soft-deletes an active employee. Historical attendance rows keep
// referencing the row; only directory reads stop seeing it.
func (s *Service) Delete(id int64) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.SoftDelete(id); err != nil {
		s.logger.Error("failed to delete employee", "error", err, "employee_id", id)
		return internal.NewInternalError(err)
	}

	s.logger.Info("employee deleted", "employee_id", id)
	return nil
}
