package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RatingCache holds the derived per-title rating so hot list endpoints do not
// recompute the aggregate on every read. Every review write for a title must
// invalidate its entry before returning.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRatingCache connects to Redis. An empty addr returns a disabled cache
// whose methods are no-ops, so callers never have to nil-check.
func NewRatingCache(addr, password string, ttl time.Duration) (*RatingCache, error) {
	if addr == "" {
		return &RatingCache{ttl: ttl}, nil
	}

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
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

func ratingKey(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

// Get returns (rating, found). A cached "none" marker comes back as a nil
// rating with found=true, so an unreviewed title still avoids the aggregate
// query.
func (c *RatingCache) Get(ctx context.Context, titleID int64) (*float64, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		// redis.Nil and transport errors both fall through to the database
		return nil, false
	}
	if val == "none" {
		return nil, true
	}
	rating, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

// Set stores a computed rating; nil means the title has no reviews.
func (c *RatingCache) Set(ctx context.Context, titleID int64, rating *float64) error {
	if c == nil || c.client == nil {
		return nil
	}

	val := "none"
	if rating != nil {
		val = strconv.FormatFloat(*rating, 'f', -1, 64)
	}
	return c.client.Set(ctx, ratingKey(titleID), val, c.ttl).Err()
}

// Invalidate drops the cached rating for a title.
func (c *RatingCache) Invalidate(ctx context.Context, titleID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, ratingKey(titleID)).Err()
}

// Close releases the underlying connection.
func (c *RatingCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
