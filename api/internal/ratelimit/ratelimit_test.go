package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, RateLimiter) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := &redisRateLimiter{
		client: client,
		limit:  3,
		window: time.Minute,
	}
	return mr, limiter
}

func TestRedisRateLimiter_AllowsUnderLimit(t *testing.T) {
	_, limiter := setupTestRedis(t)
	defer limiter.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "acme")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i)
	}
}

func TestRedisRateLimiter_BlocksOverLimit(t *testing.T) {
	_, limiter := setupTestRedis(t)
	defer limiter.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "acme")
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "acme")
	require.NoError(t, err)
	assert.False(t, allowed, "fourth request in window should be blocked")
}

func TestRedisRateLimiter_TenantsIsolated(t *testing.T) {
	_, limiter := setupTestRedis(t)
	defer limiter.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "acme")
		require.NoError(t, err)
	}

	allowed, err := limiter.Allow(ctx, "globex")
	require.NoError(t, err)
	assert.True(t, allowed, "another tenant must not be affected by acme's window")
}

func TestNewRedisRateLimiter_InvalidURL(t *testing.T) {
	_, err := NewRedisRateLimiter("not-a-valid-url", 100, time.Minute)
	assert.Error(t, err)
}

func TestNoOpRateLimiter(t *testing.T) {
	limiter := &NoOpRateLimiter{}
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		allowed, err := limiter.Allow(ctx, "any-tenant")
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	assert.NoError(t, limiter.Close())
}
