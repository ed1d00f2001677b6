package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Store(ctx context.Context, key string, emb *embedding.Embedding, ttl time.Duration) error {
	args := m.Called(ctx, key, emb, ttl)
	return args.Error(0)
}

func (m *MockRepository) Get(ctx context.Context, key string) (*embedding.Embedding, error) {
	args := m.Called(ctx, key)
	emb, ok := args.Get(0).(*embedding.Embedding)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *embedding.Embedding, got %T", args.Get(0))
	}
	return emb, args.Error(1)
}
