package brand

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisCache is a Redis-backed Cache implementation for multi-instance
// deployments where brand lookups should be shared across processes.
type redisCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// DefaultRedisKeyPrefix namespaces brand cache keys in a shared Redis.
const DefaultRedisKeyPrefix = "brand:"

// NewRedisCache creates a Cache backed by the given Redis client.
// The client's lifecycle is owned by the caller; Close is a no-op
// on the underlying connection.
func NewRedisCache(client redis.UniversalClient, keyPrefix string) Cache {
	if keyPrefix == "" {
		keyPrefix = DefaultRedisKeyPrefix
	}
	return &redisCache{client: client, keyPrefix: keyPrefix}
}

func (c *redisCache) Get(ctx context.Context, key string) (*Brand, bool) {
	data, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		// Cache misses and transport errors are treated the same:
		// fall through to the provider.
		return nil, false
	}

	var b Brand
	if err := json.Unmarshal(data, &b); err != nil {
		// Corrupt entry; drop it so the provider result replaces it.
		c.client.Del(ctx, c.keyPrefix+key)
		return nil, false
	}

	return &b, true
}

func (c *redisCache) Set(ctx context.Context, key string, b *Brand, ttl time.Duration) {
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.keyPrefix+key, data, ttl)
}

func (c *redisCache) Delete(ctx context.Context, key string) {
	c.client.Del(ctx, c.keyPrefix+key)
}

func (c *redisCache) Close() error {
	return nil
}
