package embedding_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	domainembedding "github.com/VettaLabs/ThesisGate/pkg/domain/embedding"
	"github.com/VettaLabs/ThesisGate/pkg/infra/cache"
	infraembedding "github.com/VettaLabs/ThesisGate/pkg/infra/embedding"
	"github.com/go-redis/redismock/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository(t *testing.T) {
	logger := logrus.New()
	key := fmt.Sprintf(cache.TemplateVectorKeyPattern, "text-embedding-3-small", "guaranteed-returns")

	t.Run("Store Marshals And Sets With TTL", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		repo := infraembedding.NewRedisRepository(cache.NewClientWithRedis(redisClient), logger)

		emb := &domainembedding.Embedding{
			EntityID:  "guaranteed-returns",
			Value:     []float64{0.12, -0.08, 0.99},
			CreatedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		}
		payload, err := json.Marshal(emb)
		require.NoError(t, err)

		mock.ExpectSet(key, string(payload), 24*time.Hour).SetVal("OK")

		err = repo.Store(context.Background(), key, emb, 24*time.Hour)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Store Rejects Nil Embedding", func(t *testing.T) {
		redisClient, _ := redismock.NewClientMock()
		repo := infraembedding.NewRedisRepository(cache.NewClientWithRedis(redisClient), logger)

		err := repo.Store(context.Background(), key, nil, time.Hour)
		assert.Error(t, err)
	})

	t.Run("Get Returns Stored Embedding", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		repo := infraembedding.NewRedisRepository(cache.NewClientWithRedis(redisClient), logger)

		emb := &domainembedding.Embedding{
			EntityID: "guaranteed-returns",
			Value:    []float64{0.12, -0.08, 0.99},
		}
		payload, err := json.Marshal(emb)
		require.NoError(t, err)

		mock.ExpectGet(key).SetVal(string(payload))

		got, err := repo.Get(context.Background(), key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, emb.EntityID, got.EntityID)
		assert.Equal(t, emb.Value, got.Value)
	})

	t.Run("Get Returns Nil On Cache Miss", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		repo := infraembedding.NewRedisRepository(cache.NewClientWithRedis(redisClient), logger)

		mock.ExpectGet(key).RedisNil()

		got, err := repo.Get(context.Background(), key)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Get Discards Corrupt Payload", func(t *testing.T) {
		redisClient, mock := redismock.NewClientMock()
		repo := infraembedding.NewRedisRepository(cache.NewClientWithRedis(redisClient), logger)

		mock.ExpectGet(key).SetVal("{not-json")

		got, err := repo.Get(context.Background(), key)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
