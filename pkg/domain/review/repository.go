package review

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=review_repository_mock.go --case=underscore

type Repository interface {
	Save(ctx context.Context, review *Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*Review, error)
	ListByStatus(ctx context.Context, status Status, limit int) ([]Review, error)
}
