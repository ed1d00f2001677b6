package mocks

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/stretchr/testify/mock"
)

type MockAnnotator struct {
	mock.Mock
}

func (m *MockAnnotator) Annotate(text string) content.Annotations {
	args := m.Called(text)
	ann, ok := args.Get(0).(content.Annotations)
	if !ok && args.Get(0) != nil {
		panic(fmt.Sprintf("expected content.Annotations, got %T", args.Get(0)))
	}
	return ann
}

func (m *MockAnnotator) Warmup() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockAnnotator) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}
