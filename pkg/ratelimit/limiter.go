package ratelimit

import (
	"context"
	"fmt"
	"time"

	"univer-cinema/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Limiter counts attempts per key in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// fixed window: INCR, set the expiry on first hit, report the remaining TTL
var windowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	return { count, ttl }
`)

type redisLimiter struct {
	rdb    redis.Scripter
	prefix string
	limit  int
	window time.Duration
}

func NewRedisLimiter(rdb redis.Scripter, prefix string, limit int, window time.Duration) Limiter {
	return &redisLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	res, err := windowScript.Run(ctx, l.rdb, []string{l.prefix + ":" + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return true, 0, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return true, 0, fmt.Errorf("rate limit script: unexpected result %v", res)
	}

	if res[0] > int64(l.limit) {
		return false, time.Duration(res[1]) * time.Millisecond, nil
	}
	return true, 0, nil
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string) (bool, time.Duration, error) {
	return true, 0, nil
}

// NewRedisClient connects to Redis, returning nil when no address is configured.
func NewRedisClient(ctx context.Context, cfg utils.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

// New returns a Redis-backed limiter, or one that allows everything when
// rdb is nil or limit is not positive.
func New(rdb *redis.Client, prefix string, limit int, window time.Duration) Limiter {
	if rdb == nil || limit <= 0 || window <= 0 {
		return noopLimiter{}
	}
	return NewRedisLimiter(rdb, prefix, limit, window)
}
