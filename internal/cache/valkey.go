package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config carries the Valkey connection settings. An empty Addr disables
// caching entirely and the service layer falls through to Postgres.
type Config struct {
	Addr     string
	Password string
	TTL      time.Duration
}

// Client is a thin wrapper over the Valkey connection. All values are
// stored as raw JSON produced by the caller; the cache never unmarshals.
type Client struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to valkey: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	slog.Info("Connected to Valkey", "addr", cfg.Addr, "ttl", ttl)

	return &Client{rdb: rdb, ttl: ttl}, nil
}

// EventListKey builds the cache key for one page of the unfiltered
// event listing. Filtered listings are never cached.
func EventListKey(page, limit int, sortBy string) string {
	return fmt.Sprintf("events:list:%s:%d:%d", sortBy, page, limit)
}

// UnreadCountKey builds the cache key for a user's unread notification count.
func UnreadCountKey(userID int64) string {
	return fmt.Sprintf("notifications:unread:%d", userID)
}

// Get returns the cached payload, or nil on a miss.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}
	return val, nil
}

func (c *Client) Set(ctx context.Context, key string, value []byte) error {
	if err := c.rdb.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// InvalidateEventLists drops every cached listing page. Called whenever
// an event is created, updated, deleted or its registration count moves.
func (c *Client) InvalidateEventLists(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, "events:list:*", 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache delete: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
