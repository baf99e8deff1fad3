package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on a Redis instance, for server deployments
// where several processes share one puzzle cache. Transient connection
// failures are retried with backoff; a miss is never retried.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed cache and verifies connectivity.
func NewRedisCache(ctx context.Context, addr, password string, db int) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from the cache.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, key).Bytes()
		if err != nil {
			return wrapRedisErr(err)
		}
		data = b
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache. A non-positive TTL stores the entry
// without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return RetryWithBackoff(ctx, func() error {
		return wrapRedisErr(c.client.Set(ctx, key, data, ttl).Err())
	})
}

// Delete removes a value from the cache.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		return wrapRedisErr(c.client.Del(ctx, key).Err())
	})
}

// Close releases the client's connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// wrapRedisErr marks everything except a key miss as retryable.
func wrapRedisErr(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	return Retryable(err)
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
