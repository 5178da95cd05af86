package postgres

import (
	"github.com/frahmantamala/hr-management/internal/auth"
	"gorm.io/gorm"
)

// OperatorRepository implements auth.Repository using GORM
type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(db *gorm.DB) auth.Repository {
	return &OperatorRepository{db: db}
}

// GetByEmail retrieves an operator by exact email match.
func (r *OperatorRepository) GetByEmail(email string) (*auth.Operator, error) {
	var operator auth.Operator
	err := r.db.Where("email = ?", email).First(&operator).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, auth.ErrOperatorNotFound
		}
		return nil, err
	}
	return &operator, nil
}
