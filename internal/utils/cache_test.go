package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewCache(rdb, time.Minute)

	var got []item
	hit, err := c.Get(ctx, "items", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []item{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, c.Set(ctx, "items", want))
	assert.True(t, mr.Exists("items"))
	assert.Equal(t, time.Minute, mr.TTL("items"))

	hit, err = c.Get(ctx, "items", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	require.NoError(t, c.Delete(ctx, "items"))
	hit, err = c.Get(ctx, "items", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, rdb := newTestRedis(t)
	c := NewCache(rdb, time.Second)

	require.NoError(t, c.Set(ctx, "k", item{ID: 1}))
	mr.FastForward(2 * time.Second)

	var got item
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestCacheCorruptEntry(t *testing.T) {
	mr, rdb := newTestRedis(t)
	require.NoError(t, mr.Set("k", "{not json"))

	var got item
	hit, err := NewCache(rdb, time.Minute).Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestCacheDisabled(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*Cache{nil, NewCache(nil, time.Minute)} {
		var got item
		hit, err := c.Get(ctx, "k", &got)
		assert.NoError(t, err)
		assert.False(t, hit)
		assert.NoError(t, c.Set(ctx, "k", item{ID: 1}))
		assert.NoError(t, c.Delete(ctx, "k"))
	}
}

func TestCacheGeneration(t *testing.T) {
	ctx := context.Background()
	_, rdb := newTestRedis(t)
	c := NewCache(rdb, time.Minute)

	gen, err := c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Bump(ctx, "gen"))
	require.NoError(t, c.Bump(ctx, "gen"))
	gen, err = c.Generation(ctx, "gen")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	var disabled *Cache
	gen, err = disabled.Generation(ctx, "gen")
	assert.NoError(t, err)
	assert.Zero(t, gen)
	assert.NoError(t, disabled.Bump(ctx, "gen"))
}
