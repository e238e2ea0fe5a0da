package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := NewRedisClient(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute)
}

func TestCache_JSONRoundTripAndInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name string
	}

	require.NoError(t, c.InvalidatePrefix(ctx, "test:cache:"))

	var got payload
	hit, err := c.GetJSON(ctx, "test:cache:a", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetJSON(ctx, "test:cache:a", payload{Name: "a"}))
	require.NoError(t, c.SetJSON(ctx, "test:cache:b", payload{Name: "b"}))

	hit, err = c.GetJSON(ctx, "test:cache:a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "a", got.Name)

	require.NoError(t, c.InvalidatePrefix(ctx, "test:cache:"))
	hit, err = c.GetJSON(ctx, "test:cache:b", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
