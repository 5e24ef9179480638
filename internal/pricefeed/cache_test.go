package pricefeed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemoryCache(time.Minute)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", Quote{Price: 1}))
	q, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1.0, q.Price)

	now = now.Add(2 * time.Minute)
	_, found, _ = c.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 0, c.Sweep())
}

func TestMemoryCache_ZeroTTLDisables(t *testing.T) {
	c := NewMemoryCache(0)
	require.NoError(t, c.Set(context.Background(), "k", Quote{Price: 1}))
	_, found, _ := c.Get(context.Background(), "k")
	assert.False(t, found)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	cache := NewRedisCache(db, time.Minute)

	q := Quote{Price: 61000, Currency: "usd", Source: "test", FetchedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	raw, err := json.Marshal(q)
	require.NoError(t, err)

	t.Run("set stores json with ttl", func(t *testing.T) {
		mock.ExpectSet("quote", string(raw), time.Minute).SetVal("OK")
		require.NoError(t, cache.Set(ctx, "quote", q))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit decodes quote", func(t *testing.T) {
		mock.ExpectGet("quote").SetVal(string(raw))
		got, found, err := cache.Get(ctx, "quote")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, q, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("miss is not an error", func(t *testing.T) {
		mock.ExpectGet("missing").RedisNil()
		_, found, err := cache.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, found)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
