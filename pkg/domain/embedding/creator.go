package embedding

import (
	"context"
)

//go:generate mockery --name=Creator --dir=. --output=./mocks --filename=creator_mock.go --case=underscore

// Creator maps a text span to a fixed-size vector. Implementations are
// bound to one model and credential set at construction.
type Creator interface {
	Generate(ctx context.Context, text string) (*Embedding, error)
}
