package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/audit"
	"github.com/stretchr/testify/mock"
)

type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockExporter) ValidateConfig(settings map[string]interface{}) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockExporter) WithSettings(settings map[string]interface{}) (audit.Exporter, error) {
	args := m.Called(settings)
	exporter, ok := args.Get(0).(audit.Exporter)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("unexpected type for exporter: %T", args.Get(0))
	}
	return exporter, args.Error(1)
}

func (m *MockExporter) Handle(ctx context.Context, evt *audit.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockExporter) Close() {
	m.Called()
}
