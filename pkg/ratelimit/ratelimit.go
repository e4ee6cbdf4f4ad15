package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limit is a fixed-window budget.
type Limit struct {
	Requests int
	Window   time.Duration
}

// DefaultAuthLimit throttles credential guessing without getting in the way
// of a small office: 10 attempts per minute per client.
func DefaultAuthLimit() Limit {
	return Limit{Requests: 10, Window: time.Minute}
}

// Limiter is a redis-backed request limiter. The window state is kept in a
// redis hash and updated atomically through a Lua script, so concurrent
// requests against the same key cannot both consume the last slot.
type Limiter struct {
	client    *redis.Client
	limit     Limit
	keyPrefix string
}

func NewLimiter(client *redis.Client, limit Limit) *Limiter {
	return &Limiter{
		client:    client,
		limit:     limit,
		keyPrefix: "ratelimit:",
	}
}

var windowScript = redis.NewScript(`
	local key = KEYS[1]
	local max_requests = tonumber(ARGV[1])
	local window_ms = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])

	local count = tonumber(redis.call('HGET', key, 'count')) or 0
	local window_start = tonumber(redis.call('HGET', key, 'window_start')) or now

	if now - window_start >= window_ms then
		count = 0
		window_start = now
	end

	local allowed = count < max_requests
	if allowed then
		count = count + 1
	end

	local retry_after = 0
	if not allowed then
		retry_after = math.ceil(((window_start + window_ms) - now) / 1000)
	end

	redis.call('HSET', key, 'count', count, 'window_start', window_start)
	redis.call('PEXPIRE', key, window_ms + 1000)

	return {allowed and 1 or 0, retry_after}
`)

// Allow consumes one slot for the key. When denied it returns how long the
// caller should wait before retrying.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	result, err := windowScript.Run(ctx, l.client, []string{l.keyPrefix + key},
		l.limit.Requests,
		l.limit.Window.Milliseconds(),
		time.Now().UnixMilli(),
	).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit check failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return false, 0, fmt.Errorf("unexpected script result format")
	}

	allowed := values[0].(int64) == 1
	retryAfter := time.Duration(values[1].(int64)) * time.Second

	return allowed, retryAfter, nil
}
