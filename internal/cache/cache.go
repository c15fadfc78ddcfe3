// Package cache provides the in-process entity cache behind the resource
// clients. Values are JSON-encoded snapshots of backend reads; mutations
// never write the cache directly, they only invalidate.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Store is the key-value caching interface.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetJSON retrieves and decodes a cached value. A decode failure is treated
// as a miss.
func GetJSON[T any](ctx context.Context, s Store, key string) (T, bool) {
	var out T
	data, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

// SetJSON encodes and stores a value. Encoding failures are swallowed; the
// cache is an optimization, never a source of truth.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = s.Set(ctx, key, data, ttl)
}

// Invalidate removes the given keys.
func Invalidate(ctx context.Context, s Store, keys ...string) {
	for _, k := range keys {
		_ = s.Delete(ctx, k)
	}
}
