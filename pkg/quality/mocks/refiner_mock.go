package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/stretchr/testify/mock"
)

type MockRefiner struct {
	mock.Mock
}

func (m *MockRefiner) Refine(ctx context.Context, text string) (quality.PartialScores, error) {
	args := m.Called(ctx, text)
	partial, ok := args.Get(0).(quality.PartialScores)
	if !ok && args.Get(0) != nil {
		return quality.PartialScores{}, fmt.Errorf("expected quality.PartialScores, got %T", args.Get(0))
	}
	return partial, args.Error(1)
}
