package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"

	"career-roi/logger"
)

const (
	connectRetries       = 5
	connectRetryInterval = 2 * time.Second
)

type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to addr and pings it, retrying a few times before giving up.
func NewRedisCache(ctx context.Context, addr string) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	ping := func() error {
		return rdb.Ping(ctx).Err()
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(connectRetryInterval), connectRetries), ctx)
	if err := backoff.Retry(ping, policy); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}

	return &RedisCache{client: rdb}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warnf(ctx, "redis get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
