package embedding

import (
	"context"
	"time"
)

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore

// Repository caches generated vectors so template embeddings survive
// restarts. Get returns (nil, nil) on a cache miss.
type Repository interface {
	Store(ctx context.Context, key string, emb *Embedding, ttl time.Duration) error
	Get(ctx context.Context, key string) (*Embedding, error)
}
