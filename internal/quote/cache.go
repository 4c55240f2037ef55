package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores recent quotes.
type Cache interface {
	// Get returns the cached quote, or nil when there is none.
	Get(ctx context.Context, symbol string) (*Quote, error)
	Set(ctx context.Context, q *Quote) error
}

// RedisCache keeps quotes in Redis under "quote:<SYMBOL>" with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a quote cache backed by client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(symbol string) string {
	return fmt.Sprintf("quote:%s", symbol)
}

// Get returns the cached quote for symbol, or nil on a miss.
func (c *RedisCache) Get(ctx context.Context, symbol string) (*Quote, error) {
	data, err := c.client.Get(ctx, cacheKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var q Quote
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Set stores q until the TTL expires.
func (c *RedisCache) Set(ctx context.Context, q *Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(q.Symbol), data, c.ttl).Err()
}
