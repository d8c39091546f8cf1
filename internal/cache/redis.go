package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "tribune:page:generation"

// RedisCache is the Redis-backed PageCache. Entries live under a
// generation-scoped key; InvalidateAll bumps the generation counter, which
// orphans every stored page in one atomic write and lets TTLs sweep the
// leftovers.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get returns the entry stored for key in the current generation.
func (c *RedisCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		return Entry{}, false, err
	}

	raw, err := c.client.Get(ctx, entryKey(gen, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return Entry{}, false, err
	}
	return entry, true, nil
}

// Set stores the entry for key under the current generation.
func (c *RedisCache) Set(ctx context.Context, key string, entry Entry, ttl time.Duration) error {
	gen, err := c.generation(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, entryKey(gen, key), raw, ttl).Err()
}

// InvalidateAll advances the generation. The INCR has completed before
// this returns, so any subsequent Get resolves against the new, empty
// generation.
func (c *RedisCache) InvalidateAll(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func entryKey(generation int64, key string) string {
	return fmt.Sprintf("tribune:page:%d:%s", generation, key)
}
