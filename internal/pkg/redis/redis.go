package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Claim states.
const (
	StateInFlight = "0"
	StateDone     = "1"
)

// Client wraps go-redis for the application.
type Client struct {
	rdb *redis.Client
}

// Connect creates a Redis client and verifies connectivity.
func Connect(url string) (*Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &Client{rdb: rdb}, nil
}

// Ping reports whether the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Hit increments the counter for key in the fixed window containing now and returns the new count.
// The counter expires shortly after the window closes.
func (c *Client) Hit(ctx context.Context, key string, window time.Duration, now time.Time) (int64, error) {
	bucket := now.UnixNano() / int64(window)
	windowKey := fmt.Sprintf("%s:%d", key, bucket)

	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, windowKey)
	pipe.PExpire(ctx, windowKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Claim marks key as in flight for ttl. It returns false with the current state when
// the key is already held: StateInFlight or StateDone.
func (c *Client) Claim(ctx context.Context, key string, ttl time.Duration) (bool, string, error) {
	ok, err := c.rdb.SetNX(ctx, key, StateInFlight, ttl).Result()
	if err != nil || ok {
		return ok, "", err
	}
	state, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, StateDone, nil
	}
	return false, state, err
}

// Complete records a successful outcome for key without changing its expiry.
func (c *Client) Complete(ctx context.Context, key string) error {
	return c.rdb.Set(ctx, key, StateDone, redis.KeepTTL).Err()
}

// Release drops key so the same request can be retried.
func (c *Client) Release(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}
