package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/signal"
	"github.com/stretchr/testify/mock"
)

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockProducer) Produce(ctx context.Context, doc *content.Document) (signal.Signal, error) {
	args := m.Called(ctx, doc)
	sig, ok := args.Get(0).(signal.Signal)
	if !ok && args.Get(0) != nil {
		return signal.Signal{}, fmt.Errorf("expected signal.Signal, got %T", args.Get(0))
	}
	return sig, args.Error(1)
}
