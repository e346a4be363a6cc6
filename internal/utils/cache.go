package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Error matching
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err // Corrupt entry counts as a miss
	}
	return true, nil
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// Cache is a JSON read-through cache over Redis. A nil *Cache, or one built
// without a client, never hits and silently drops writes.
type Cache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Entry lifetime
}

// NewCache creates a cache with the given entry lifetime
func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

func (c *Cache) enabled() bool { return c != nil && c.rdb != nil }

// Get loads key into dest and reports whether it was found
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	return GetCache(ctx, c.rdb, key, dest)
}

// Set stores value under key for the cache TTL
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if !c.enabled() {
		return nil
	}
	return SetCache(ctx, c.rdb, key, value, c.ttl)
}

// Delete removes key
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.enabled() {
		return nil
	}
	return DeleteCache(ctx, c.rdb, key)
}

// Generation returns the counter stored at key, zero when unset or when caching is disabled
func (c *Cache) Generation(ctx context.Context, key string) (int64, error) {
	if !c.enabled() {
		return 0, nil
	}
	n, err := c.rdb.Get(ctx, key).Int64() // Read the counter
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never bumped
	}
	return n, err
}

// Bump increments the counter at key, retiring every entry keyed on the old value
func (c *Cache) Bump(ctx context.Context, key string) error {
	if !c.enabled() {
		return nil
	}
	return c.rdb.Incr(ctx, key).Err() // Atomic increment
}
