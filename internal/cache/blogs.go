package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// blogListKey holds the serialized JSON response of GET /api/blogs.
	blogListKey = "blogs:list"

	// DefaultBlogListTTL bounds staleness if an invalidation is ever missed.
	DefaultBlogListTTL = 5 * time.Minute
)

// BlogList caches the rendered JSON of the public blog listing. Writes to
// the blog store invalidate it, so the TTL is only a backstop.
type BlogList struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBlogList creates a blog list cache over the given client.
func NewBlogList(client *redis.Client, ttl time.Duration) *BlogList {
	if ttl == 0 {
		ttl = DefaultBlogListTTL
	}
	return &BlogList{client: client, ttl: ttl}
}

// Get returns the cached listing, or false on a miss.
func (c *BlogList) Get(ctx context.Context) ([]byte, bool) {
	val, err := c.client.Get(ctx, blogListKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("blog list cache get error", "error", err)
		return nil, false
	}
	return val, true
}

// Set stores the serialized listing with the configured TTL.
func (c *BlogList) Set(ctx context.Context, payload []byte) {
	if err := c.client.Set(ctx, blogListKey, payload, c.ttl).Err(); err != nil {
		slog.Warn("blog list cache set error", "error", err)
	}
}

// Invalidate drops the cached listing. Called after every create, update
// and delete.
func (c *BlogList) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, blogListKey).Err(); err != nil {
		slog.Warn("blog list cache invalidate error", "error", err)
	}
}
