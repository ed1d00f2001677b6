package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(ctx context.Context, entity *review.Review) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	entity, ok := args.Get(0).(*review.Review)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("unexpected type for review: %T", args.Get(0))
	}
	return entity, args.Error(1)
}

func (m *MockRepository) ListByStatus(ctx context.Context, status review.Status, limit int) ([]review.Review, error) {
	args := m.Called(ctx, status, limit)
	entities, ok := args.Get(0).([]review.Review)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("unexpected type for review list: %T", args.Get(0))
	}
	return entities, args.Error(1)
}
