package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/infra/providers"
	"github.com/stretchr/testify/mock"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Complete(ctx context.Context, req *providers.Request) (*providers.Completion, error) {
	args := m.Called(ctx, req)
	resp, ok := args.Get(0).(*providers.Completion)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("expected *providers.Completion, got %T", args.Get(0))
	}
	return resp, args.Error(1)
}
