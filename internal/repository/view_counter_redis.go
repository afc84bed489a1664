package repository

import (
	"context"
	"fmt"

	"marketplace_service/internal/domain"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type redisViewCounter struct {
	rdb *redis.Client
	key string
	log *logrus.Logger
}

// NewRedisViewCounter counts with INCR on key, so concurrent replicas share one counter.
func NewRedisViewCounter(rdb *redis.Client, key string, logger *logrus.Logger) domain.ViewCounter {
	return &redisViewCounter{rdb: rdb, key: key, log: logger}
}

func (c *redisViewCounter) IncrementAndGet(ctx context.Context) (int64, error) {
	count, err := c.rdb.Incr(ctx, c.key).Result()
	if err != nil {
		c.log.Errorf("Failed to increment view count in Redis key %s: %v", c.key, err)
		return 0, fmt.Errorf("could not update view count: %w", err)
	}
	return count, nil
}
