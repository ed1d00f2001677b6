package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/stretchr/testify/mock"
)

type MockCreator struct {
	mock.Mock
}

func (m *MockCreator) Generate(ctx context.Context, text string) (*embedding.Embedding, error) {
	args := m.Called(ctx, text)
	emb, ok := args.Get(0).(*embedding.Embedding)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *embedding.Embedding, got %T", args.Get(0))
	}
	return emb, args.Error(1)
}
