package strikes

import (
	"context"
	"errors"
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/infra/cache"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

//go:generate mockery --name=Tracker --dir=. --output=./mocks --filename=tracker_mock.go --case=underscore --with-expecter
type Tracker interface {
	Record(ctx context.Context, fp Fingerprint) (int64, error)
	Count(ctx context.Context, fp Fingerprint) (int64, error)
	Throttled(ctx context.Context, fp Fingerprint) (bool, error)
}

type tracker struct {
	cache  cache.Client
	cfg    config.StrikesConfig
	logger *logrus.Logger
}

// NewTracker counts blocked submissions per client fingerprint inside a
// rolling TTL window. A disabled tracker records nothing and never
// throttles.
func NewTracker(cacheClient cache.Client, cfg config.StrikesConfig, logger *logrus.Logger) Tracker {
	return &tracker{
		cache:  cacheClient,
		cfg:    cfg,
		logger: logger,
	}
}

// Record bumps the strike counter and refreshes its window. Returns the
// count after the bump.
func (t *tracker) Record(ctx context.Context, fp Fingerprint) (int64, error) {
	if !t.cfg.Enabled {
		return 0, nil
	}
	key := fmt.Sprintf(cache.StrikeKeyPattern, fp.ID())

	pipe := t.cache.RedisClient().TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to record strike: %w", err)
	}

	count := incr.Val()
	t.logger.WithFields(logrus.Fields{
		"fingerprint": fp.ID(),
		"strikes":     count,
	}).Debug("strike recorded")
	return count, nil
}

func (t *tracker) Count(ctx context.Context, fp Fingerprint) (int64, error) {
	if !t.cfg.Enabled {
		return 0, nil
	}
	key := fmt.Sprintf(cache.StrikeKeyPattern, fp.ID())

	count, err := t.cache.RedisClient().Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read strike count: %w", err)
	}
	return count, nil
}

// Throttled reports whether the client has hit the block limit inside
// the current window.
func (t *tracker) Throttled(ctx context.Context, fp Fingerprint) (bool, error) {
	if !t.cfg.Enabled {
		return false, nil
	}
	count, err := t.Count(ctx, fp)
	if err != nil {
		return false, err
	}
	return count >= t.cfg.BlockLimit, nil
}
