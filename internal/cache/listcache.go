// Package cache provides a Redis-backed cache for the consolidated shopping
// list. The cache is a pure accelerator: every method degrades to a miss (or
// a no-op) on any Redis error, so the database stays the source of truth and
// the application runs unchanged without Redis.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/mvasila/go-grocer-backend/internal/consolidation"
)

// listKey is the single Redis key holding the serialized shopping list.
// There is one shared list per deployment, so no key parameterization.
const listKey = "grocer:shopping_list"

// Options holds connection settings for the Redis client.
type Options struct {
	Addr     string
	Password string
	DB       int
	// TTL bounds staleness if an invalidation is ever lost (e.g. a crash
	// between commit and Invalidate). Zero means no expiry.
	TTL time.Duration
}

// ListCache caches consolidation entries in Redis. Safe for concurrent use.
type ListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewListCache connects to Redis and verifies the connection with a ping.
func NewListCache(opts Options) (*ListCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}

	return &ListCache{rdb: rdb, ttl: opts.TTL}, nil
}

// Close releases the underlying Redis connection.
func (c *ListCache) Close() error {
	return c.rdb.Close()
}

// Get returns the cached list and true on a hit. A missing key, a decode
// failure, or any Redis error all count as a miss.
func (c *ListCache) Get(ctx context.Context) ([]consolidation.Entry, bool) {
	raw, err := c.rdb.Get(ctx, listKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Msg("list cache get failed, falling through to db")
		return nil, false
	}

	var entries []consolidation.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Corrupt payload: drop it so the next Set repairs the key.
		_ = c.rdb.Del(ctx, listKey).Err()
		return nil, false
	}
	return entries, true
}

// Set stores the list. Best effort; failures are logged and swallowed.
func (c *ListCache) Set(ctx context.Context, entries []consolidation.Entry) {
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, listKey, raw, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("list cache set failed")
	}
}

// Invalidate drops the cached list. Best effort; a failed delete only means
// a stale read until the TTL fires or the next Set overwrites the key.
func (c *ListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, listKey).Err(); err != nil {
		log.Warn().Err(err).Msg("list cache invalidate failed")
	}
}
