package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultTTL applies when SetJSON is called without a TTL
const DefaultTTL = time.Minute

// Options configures the Redis connection
type Options struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// Redis is a JSON cache. A nil or disconnected Redis is a valid value that
// misses on every read and ignores every write.
type Redis struct {
	client *redis.Client
	log    zerolog.Logger

	warnedUnavailable atomic.Bool
}

// NewRedis connects to Redis, falling back to a bypassing cache when disabled or unreachable
func NewRedis(opts Options, log zerolog.Logger) *Redis {
	if !opts.Enabled || strings.TrimSpace(opts.Addr) == "" {
		log.Info().Msg("Redis cache disabled")
		return &Redis{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", opts.Addr).Msg("Redis unavailable, bypassing cache")
		_ = client.Close()
		return &Redis{log: log}
	}

	log.Info().Str("addr", opts.Addr).Msg("Redis cache connected")
	return &Redis{client: client, log: log}
}

// Available reports whether reads and writes reach Redis
func (r *Redis) Available() bool {
	return r != nil && r.client != nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		r.log.Warn().Err(err).Msg("Redis command failed, bypassing cache")
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if !r.Available() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON decodes the cached value into out; hit is false on a miss
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (hit bool, err error) {
	if !r.Available() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if !r.Available() {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if !r.Available() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a glob pattern
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if !r.Available() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}

	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		k := iter.Val()
		if err := r.client.Del(ctx, k).Err(); err != nil {
			r.log.Warn().Err(err).Str("key", k).Str("pattern", pattern).Msg("Redis delete error")
		}
	}
	return iter.Err()
}

func (r *Redis) Close() error {
	if !r.Available() {
		return nil
	}
	return r.client.Close()
}
