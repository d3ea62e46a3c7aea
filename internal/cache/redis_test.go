package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/EAMIN-SHANTO/UniBeez-sub000/internal/domain"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewRedisCache(client), mr
}

func testCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 2, Price: 10.00},
			{ProductID: 2, Quantity: 1, Price: 4.50},
		},
		TotalAmount: 24.50,
		Version:     3,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func TestCacheRoundTrip_PreservesVersionAndTotal(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", testCart("user123")))

	got, err := cache.Get(ctx, "user123")
	require.NoError(t, err)
	assert.Equal(t, "user123", got.UserID)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 24.50, got.TotalAmount)
	assert.Equal(t, int64(3), got.Version, "CAS token must survive the cache")
}

func TestCacheGet_Miss(t *testing.T) {
	cache, _ := setupTestRedis(t)

	got, err := cache.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, got)
}

func TestCacheGet_CorruptPayload(t *testing.T) {
	cache, mr := setupTestRedis(t)

	payload, err := json.Marshal(cachedCart{Cart: *testCart("user123"), Version: 3})
	require.NoError(t, err)
	require.NoError(t, mr.Set(cacheKey("user123"), string(payload[:10])))

	_, err = cache.Get(context.Background(), "user123")
	require.ErrorContains(t, err, "unmarshal cached cart failed")
}

func TestCacheSet_AppliesTTL(t *testing.T) {
	cache, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", testCart("user123")))

	ttl := mr.TTL(cacheKey("user123"))
	assert.GreaterOrEqual(t, ttl, 15*time.Minute)
	assert.LessOrEqual(t, ttl, 20*time.Minute)

	mr.FastForward(21 * time.Minute)
	_, err := cache.Get(ctx, "user123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheDelete(t *testing.T) {
	cache, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user123", testCart("user123")))
	require.NoError(t, cache.Delete(ctx, "user123"))

	_, err := cache.Get(ctx, "user123")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCacheDelete_AbsentKeyIsNoOp(t *testing.T) {
	cache, _ := setupTestRedis(t)
	assert.NoError(t, cache.Delete(context.Background(), "nobody"))
}
