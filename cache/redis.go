package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xraph/depot"
)

// Compile-time interface check.
var _ depot.Cache = (*Redis)(nil)

// Redis is a shared cache backed by a Redis server. Backend errors are
// logged and absorbed: a failed read is a miss and a failed write is
// dropped, so an unhealthy Redis degrades Depot to uncached operation
// instead of failing requests.
type Redis struct {
	rdb    *redis.Client
	prefix string
	logger *slog.Logger
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces Depot's keys on a shared server.
	Prefix string
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, cfg *RedisConfig, logger *slog.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Redis{rdb: rdb, prefix: cfg.Prefix, logger: logger}, nil
}

// Close closes the underlying client.
func (r *Redis) Close() error { return r.rdb.Close() }

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

// Get returns the cached payload for key, if present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.rdb.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.WarnContext(ctx, "redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Set stores a payload under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis set failed", "key", key, "error", err)
	}
}

// Delete removes a key.
func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.WarnContext(ctx, "redis del failed", "key", key, "error", err)
	}
}
