package repository

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) review.Repository {
	return &ReviewRepository{
		db: db,
	}
}

func (r *ReviewRepository) Save(ctx context.Context, entity *review.Review) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var entity review.Review
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *ReviewRepository) ListByStatus(ctx context.Context, status review.Status, limit int) ([]review.Review, error) {
	var entities []review.Review
	query := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}
