package documents

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hrcore/internal/apperrors"
	"hrcore/internal/models"
)

// Store is the GORM-backed MetadataStore.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, doc *models.Document) error {
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		return apperrors.NewRemoteError("insert document", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("document %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewRemoteError("get document", err)
	}
	return &doc, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewRemoteError("delete document", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("document %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&docs).Error; err != nil {
		return nil, apperrors.NewRemoteError("list documents", err)
	}
	return docs, nil
}
