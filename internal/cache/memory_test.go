package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	entry := Entry{Status: 200, ContentType: "application/json", Body: []byte(`{"posts":[]}`)}
	require.NoError(t, c.Set(ctx, "/?page=1", entry, time.Minute))

	got, ok, err := c.Get(ctx, "/?page=1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, entry, got)
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewMemoryCache()

	_, ok, err := c.Get(context.Background(), "/missing")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }
	require.NoError(t, c.Set(ctx, "/", Entry{Status: 200}, 20*time.Second))

	c.now = func() time.Time { return now.Add(19 * time.Second) }
	_, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.True(t, ok)

	c.now = func() time.Time { return now.Add(21 * time.Second) }
	_, ok, err = c.Get(ctx, "/")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCacheInvalidateAll(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "/", Entry{Status: 200}, time.Minute))
	require.NoError(t, c.Set(ctx, "/?page=2", Entry{Status: 200}, time.Minute))
	require.NoError(t, c.InvalidateAll(ctx))

	_, ok, err := c.Get(ctx, "/")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = c.Get(ctx, "/?page=2")
	require.NoError(t, err)
	require.False(t, ok)
}
