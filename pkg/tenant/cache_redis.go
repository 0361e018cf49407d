package tenant

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tenant:"

// RedisCache is a Cache backed by Redis, for deployments running more
// than one storefront instance against the same tenant directory.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a Redis-backed tenant cache.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Info, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		return nil, false
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		// Stale or corrupt entry; drop it and fall through to the provider.
		c.Delete(ctx, key)
		return nil, false
	}
	return &info, true
}

func (c *RedisCache) Set(ctx context.Context, key string, info *Info, ttl time.Duration) {
	data, err := json.Marshal(info)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	_ = c.client.Del(ctx, redisKeyPrefix+key).Err()
}

func (c *RedisCache) Close() error {
	return nil // the redis client is owned by the caller
}
