package employees

import (
	"context"

	"gorm.io/gorm"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
)

// Store is the GORM-backed ProfileStore.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, emp *models.Employee) error {
	if err := s.db.WithContext(ctx).Create(emp).Error; err != nil {
		return apperrors.NewRemoteError("insert employee", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	var emps []models.Employee
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&emps).Error; err != nil {
		return nil, apperrors.NewRemoteError("list employees", err)
	}
	return emps, nil
}
