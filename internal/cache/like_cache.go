// Package cache holds the redis fast path for hot read endpoints. Every
// method is nil-safe so the API runs without redis in development and tests.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type LikeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLikeCache connects to redis. A connection failure returns an error; the
// caller may continue with a nil cache.
func NewLikeCache(addr, password string, ttl time.Duration) (*LikeCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &LikeCache{client: rdb, ttl: ttl}, nil
}

func (c *LikeCache) key(blogID string) string {
	return fmt.Sprintf("blog:%s:like_count", blogID)
}

// GetLikeCount returns (count, true) on a warm hit.
func (c *LikeCache) GetLikeCount(ctx context.Context, blogID string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, c.key(blogID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

// SetLikeCount refreshes the cached count, typically right after a toggle.
func (c *LikeCache) SetLikeCount(ctx context.Context, blogID string, count int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, c.key(blogID), count, c.ttl)
}

// Invalidate drops the cached count for a blog.
func (c *LikeCache) Invalidate(ctx context.Context, blogID string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, c.key(blogID))
}

// Close releases the underlying connection.
func (c *LikeCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
