package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto implements Store over dgraph-io/ristretto as an in-process cache.
type Ristretto struct {
	c *ristretto.Cache[string, []byte]
}

// NewRistretto creates a ristretto-backed cache. maxCostBytes is the maximum
// total size of cached values in bytes.
func NewRistretto(maxCostBytes int64) (*Ristretto, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: maxCostBytes / 100 * 10, // ~10x expected items
		MaxCost:     maxCostBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto{c: c}, nil
}

// Get retrieves a value from the cache.
func (r *Ristretto) Get(_ context.Context, key string) (data []byte, ok bool, err error) {
	val, found := r.c.Get(key)
	if !found {
		return nil, false, nil
	}
	return val, true, nil
}

// Set stores a value in the cache with the given TTL and waits for it to
// become visible, so a read that follows a server-confirmed write never
// races the admission buffer.
func (r *Ristretto) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.c.SetWithTTL(key, value, int64(len(value)), ttl)
	r.c.Wait()
	return nil
}

// Delete removes a value from the cache.
func (r *Ristretto) Delete(_ context.Context, key string) error {
	r.c.Del(key)
	return nil
}

// Close shuts down the cache and releases resources.
func (r *Ristretto) Close() {
	r.c.Close()
}
