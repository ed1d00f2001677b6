package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/infra/strikes"
	"github.com/stretchr/testify/mock"
)

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Record(ctx context.Context, fp strikes.Fingerprint) (int64, error) {
	args := m.Called(ctx, fp)
	count, ok := args.Get(0).(int64)
	if !ok && args.Get(0) != nil {
		return 0, fmt.Errorf("unexpected type for strike count: %T", args.Get(0))
	}
	return count, args.Error(1)
}

func (m *MockTracker) Count(ctx context.Context, fp strikes.Fingerprint) (int64, error) {
	args := m.Called(ctx, fp)
	count, ok := args.Get(0).(int64)
	if !ok && args.Get(0) != nil {
		return 0, fmt.Errorf("unexpected type for strike count: %T", args.Get(0))
	}
	return count, args.Error(1)
}

func (m *MockTracker) Throttled(ctx context.Context, fp strikes.Fingerprint) (bool, error) {
	args := m.Called(ctx, fp)
	return args.Bool(0), args.Error(1)
}
