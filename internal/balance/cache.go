package balance

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores derived balance payloads for a short TTL. Balance derivation
// is idempotent over the committed expense set, so stale entries are only
// ever as old as the TTL; there is no explicit invalidation.
type Cache interface {
	// Get unmarshals the cached payload into out, reporting a hit.
	Get(ctx context.Context, key string, out interface{}) bool
	// Set stores v under key until the TTL expires.
	Set(ctx context.Context, key string, v interface{})
}

// memoryCache is a process-local Cache for single-instance deployments
type memoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryCache creates an in-memory cache with the given TTL
func NewMemoryCache(ttl time.Duration) Cache {
	return &memoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *memoryCache) Get(_ context.Context, key string, out interface{}) bool {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false
	}
	return json.Unmarshal(entry.data, out) == nil
}

func (c *memoryCache) Set(_ context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// redisCache is a Cache backed by redis, for multi-instance deployments
// where every instance should serve the same derived balances.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a redis-backed cache with the given TTL
func NewRedisCache(client *redis.Client, ttl time.Duration) Cache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string, out interface{}) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("balance cache read failed", "key", key, "error", err)
		}
		return false
	}
	return json.Unmarshal(val, out) == nil
}

func (c *redisCache) Set(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		slog.Warn("balance cache write failed", "key", key, "error", err)
	}
}
