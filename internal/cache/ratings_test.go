package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *RatingCache {
	redis := miniredis.RunT(t)
	c, err := NewRatingCache(redis.Addr(), "", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRatingCache_SetAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	rating := 7.5
	require.NoError(t, c.Set(ctx, 1, &rating))

	got, found := c.Get(ctx, 1)
	assert.True(t, found)
	require.NotNil(t, got)
	assert.Equal(t, 7.5, *got)
}

func TestRatingCache_NilRatingIsCached(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	// an unreviewed title still produces a cache entry
	require.NoError(t, c.Set(ctx, 2, nil))

	got, found := c.Get(ctx, 2)
	assert.True(t, found)
	assert.Nil(t, got)
}

func TestRatingCache_Miss(t *testing.T) {
	c := newTestCache(t)

	got, found := c.Get(context.Background(), 99)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestRatingCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	rating := 4.0
	require.NoError(t, c.Set(ctx, 3, &rating))
	require.NoError(t, c.Invalidate(ctx, 3))

	_, found := c.Get(ctx, 3)
	assert.False(t, found)
}

func TestRatingCache_DisabledIsNoop(t *testing.T) {
	c, err := NewRatingCache("", "", time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	rating := 5.0
	assert.NoError(t, c.Set(ctx, 1, &rating))
	assert.NoError(t, c.Invalidate(ctx, 1))

	_, found := c.Get(ctx, 1)
	assert.False(t, found)
}

func TestRatingCache_NilReceiver(t *testing.T) {
	var c *RatingCache
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, 1, nil))
	assert.NoError(t, c.Invalidate(ctx, 1))
	assert.NoError(t, c.Close())

	_, found := c.Get(ctx, 1)
	assert.False(t, found)
}
