package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/engine"
	"github.com/stretchr/testify/mock"
)

type MockModerator struct {
	mock.Mock
}

func (m *MockModerator) Moderate(ctx context.Context, text string) (*engine.Moderation, error) {
	args := m.Called(ctx, text)
	result, ok := args.Get(0).(*engine.Moderation)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("unexpected type for moderation: %T", args.Get(0))
	}
	return result, args.Error(1)
}
