package cache_utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"
)

const (
	DefaultCacheTimeout = 2 * time.Second
	DefaultCacheExpiry  = 5 * time.Minute
)

// CacheUtil stores JSON encoded values under a key prefix. Every failure is
// reported as a miss so callers fall back to the source of truth.
type CacheUtil[T any] struct {
	getClient func() valkey.Client
	prefix    string
	timeout   time.Duration
	expiry    time.Duration
}

func NewCacheUtil[T any](getClient func() valkey.Client, prefix string) *CacheUtil[T] {
	return &CacheUtil[T]{
		getClient: getClient,
		prefix:    prefix,
		timeout:   DefaultCacheTimeout,
		expiry:    DefaultCacheExpiry,
	}
}

func (c *CacheUtil[T]) WithExpiry(expiry time.Duration) *CacheUtil[T] {
	copied := *c
	copied.expiry = expiry
	return &copied
}

func (c *CacheUtil[T]) Get(ctx context.Context, key string) *T {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := c.getClient()
	result := client.Do(ctx, client.B().Get().Key(c.prefix+key).Build())
	if result.Error() != nil {
		return nil
	}

	data, err := result.AsBytes()
	if err != nil {
		return nil
	}

	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return nil
	}

	return &item
}

func (c *CacheUtil[T]) Set(ctx context.Context, key string, item *T) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := json.Marshal(item)
	if err != nil {
		return
	}

	client := c.getClient()
	client.Do(ctx, client.B().Set().Key(c.prefix+key).Value(string(data)).Ex(c.expiry).Build())
}

func (c *CacheUtil[T]) Invalidate(ctx context.Context, key string) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client := c.getClient()
	client.Do(ctx, client.B().Del().Key(c.prefix+key).Build())
}
