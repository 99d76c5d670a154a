package depot

import (
	"context"
	"encoding/json"
	"time"
)

// Cache is a keyed byte store with per-entry TTL. Implementations must be
// safe for concurrent use. Backend failures are absorbed by the callers
// here: a failed Get is a miss, a failed Set is skipped, and computation
// proceeds against the store either way.
type Cache interface {
	// Get returns the cached payload for key, if present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a payload under key with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes a key.
	Delete(ctx context.Context, key string)
}

// cacheGet decodes the cached JSON payload for key into a T. Any decode
// failure is treated as a miss.
func cacheGet[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var v T
	if c == nil {
		return v, false
	}
	data, ok := c.Get(ctx, key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false
	}
	return v, true
}

// cacheSet encodes v as JSON and stores it. Encode failures are dropped.
func cacheSet[T any](ctx context.Context, c Cache, key string, v T, ttl time.Duration) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, data, ttl)
}

// getOrCompute returns the cached value for key, computing and caching it
// on a miss. Duplicate concurrent computes are acceptable; the computation
// must be a pure read. A canceled context never populates the cache.
func getOrCompute[T any](ctx context.Context, c Cache, key string, ttl time.Duration, compute func(context.Context) (T, error)) (T, error) {
	if v, ok := cacheGet[T](ctx, c, key); ok {
		return v, nil
	}
	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if ctx.Err() == nil {
		cacheSet(ctx, c, key, v, ttl)
	}
	return v, nil
}
