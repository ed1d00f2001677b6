package mocks

import (
	"context"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/content"
	"github.com/VettaLabs/ThesisGate/pkg/domain/quality"
	"github.com/stretchr/testify/mock"
)

type MockScorer struct {
	mock.Mock
}

func (m *MockScorer) Score(ctx context.Context, doc *content.Document) (*quality.Report, error) {
	args := m.Called(ctx, doc)
	rep, ok := args.Get(0).(*quality.Report)
	if !ok && args.Get(0) != nil {
		return nil, fmt.Errorf("unexpected type for report: %T", args.Get(0))
	}
	return rep, args.Error(1)
}
