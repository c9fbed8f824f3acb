package rate_limit

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/SH20RAJ/sketchflow-sub001/internal/cache"

	"github.com/valkey-io/valkey-go"
)

type RateLimiter struct {
	getClient func() valkey.Client
}

type Limit struct {
	PerMinute int
	Burst     int
}

type RateLimitResult struct {
	Allowed       bool      `json:"allowed"`
	Remaining     int       `json:"remaining"`
	ResetTime     time.Time `json:"resetTime"`
	RetryAfterSec int       `json:"retryAfterSec,omitempty"`
}

const (
	defaultTimeout = 5 * time.Second
	keyPrefix      = "sf_rate_limit:"
	bucketTTLSec   = 600
)

// Token bucket evaluated atomically on the server:
// refill by elapsed time, take one token if available, persist the state.
const tokenBucketLuaScript = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local per_minute = tonumber(ARGV[2])
local burst_limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local current = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(current[1]) or burst_limit
local last_refill = tonumber(current[2]) or now

local elapsed = math.max(0, now - last_refill)
local tokens_to_add = math.floor(elapsed * per_minute / 60000)
if tokens_to_add > 0 then
    tokens = math.min(burst_limit, tokens + tokens_to_add)
    last_refill = now
end

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', last_refill)
redis.call('EXPIRE', key, ttl)

local time_to_full = 0
if tokens < burst_limit then
    time_to_full = math.ceil((burst_limit - tokens) * 60000 / per_minute)
end

return {allowed, tokens, time_to_full}
`

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{getClient: cache.GetCache}
}

func NewRateLimiterWithClient(client valkey.Client) *RateLimiter {
	return &RateLimiter{getClient: func() valkey.Client { return client }}
}

// CheckRateLimit consumes one token from the bucket identified by key
func (r *RateLimiter) CheckRateLimit(ctx context.Context, key string, limit Limit) (*RateLimitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	perMinute := limit.PerMinute
	if perMinute <= 0 {
		perMinute = 60
	}
	burst := limit.Burst
	if burst <= 0 {
		burst = perMinute
	}

	client := r.getClient()
	now := time.Now().UnixMilli()

	result := client.Do(ctx, client.B().Eval().
		Script(tokenBucketLuaScript).
		Numkeys(1).
		Key(keyPrefix+key).
		Arg(strconv.FormatInt(now, 10)).
		Arg(strconv.Itoa(perMinute)).
		Arg(strconv.Itoa(burst)).
		Arg(strconv.Itoa(bucketTTLSec)).
		Build())

	if result.Error() != nil {
		return nil, fmt.Errorf("rate limit check failed: %w", result.Error())
	}

	values, err := result.AsIntSlice()
	if err != nil {
		return nil, fmt.Errorf("failed to parse rate limit result: %w", err)
	}

	if len(values) < 3 {
		return nil, fmt.Errorf("invalid rate limit result: expected 3 values, got %d", len(values))
	}

	allowed := values[0] == 1
	resetTime := time.Now().Add(time.Duration(values[2]) * time.Millisecond)

	var retryAfterSec int
	if !allowed {
		retryAfterSec = max(1, int(math.Ceil(60.0/float64(perMinute))))
	}

	return &RateLimitResult{
		Allowed:       allowed,
		Remaining:     int(values[1]),
		ResetTime:     resetTime,
		RetryAfterSec: retryAfterSec,
	}, nil
}

func (r *RateLimiter) ResetRateLimit(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	client := r.getClient()
	return client.Do(ctx, client.B().Del().Key(keyPrefix+key).Build()).Error()
}
