package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "talent_messenger/pkg/errors"
	"talent_messenger/pkg/logger"
)

const collectionKeyPrefix = "messenger:collection:"

// redisMedium stores each collection as one string key. No TTL, since
// conversations outlive sessions.
type redisMedium struct {
	rdb *redis.Client
	log logger.Logger
}

func NewRedisMedium(rdb *redis.Client, log logger.Logger) Medium {
	return &redisMedium{rdb: rdb, log: log}
}

func (m *redisMedium) key(name string) string {
	return collectionKeyPrefix + name
}

func (m *redisMedium) Load(ctx context.Context, name string) (string, bool, error) {
	payload, err := m.rdb.Get(ctx, m.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		m.log.Error("Failed to load collection from Redis", "collection", name, "error", err)
		return "", false, fmt.Errorf("%w: read %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	return payload, true, nil
}

func (m *redisMedium) Save(ctx context.Context, name, payload string) error {
	if err := m.rdb.Set(ctx, m.key(name), payload, 0).Err(); err != nil {
		m.log.Error("Failed to save collection to Redis", "collection", name, "error", err)
		return fmt.Errorf("%w: write %q: %v", apperrors.ErrMediumUnavailable, name, err)
	}
	return nil
}
