package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/VettaLabs/ThesisGate/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// redisRepository persists template vectors in redis so the semantic
// producer does not re-embed its scam templates on every restart.
type redisRepository struct {
	cache  cache.Client
	logger *logrus.Logger
}

func NewRedisRepository(cache cache.Client, logger *logrus.Logger) embedding.Repository {
	return &redisRepository{
		cache:  cache,
		logger: logger,
	}
}

func (r *redisRepository) Store(ctx context.Context, key string, emb *embedding.Embedding, ttl time.Duration) error {
	if emb == nil {
		return fmt.Errorf("embedding must not be nil")
	}

	payload, err := json.Marshal(emb)
	if err != nil {
		return fmt.Errorf("failed to marshal embedding: %w", err)
	}

	if err := r.cache.Set(ctx, key, string(payload), ttl); err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}

	return nil
}

func (r *redisRepository) Get(ctx context.Context, key string) (*embedding.Embedding, error) {
	payload, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch embedding: %w", err)
	}

	var emb embedding.Embedding
	if err := json.Unmarshal([]byte(payload), &emb); err != nil {
		r.logger.WithError(err).WithField("key", key).Warn("discarding corrupt cached embedding")
		return nil, nil
	}

	return &emb, nil
}
