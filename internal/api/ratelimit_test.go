package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLimiter(t *testing.T, limit int) *RateLimiter {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRateLimiter(client, limit)
}

func limiterRequest() *http.Request {
	return httptest.NewRequest("POST", "/verify", nil)
}

func TestAllowWithinBudget(t *testing.T) {
	rl := setupLimiter(t, 3)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(limiterRequest(), "key-001"), "request %d should be allowed", i+1)
	}
}

func TestDenyOverBudget(t *testing.T) {
	rl := setupLimiter(t, 3)

	for i := 0; i < 3; i++ {
		require.True(t, rl.Allow(limiterRequest(), "key-001"))
	}
	assert.False(t, rl.Allow(limiterRequest(), "key-001"))
}

func TestBudgetsArePerKey(t *testing.T) {
	rl := setupLimiter(t, 1)

	require.True(t, rl.Allow(limiterRequest(), "key-001"))
	require.False(t, rl.Allow(limiterRequest(), "key-001"))
	assert.True(t, rl.Allow(limiterRequest(), "key-002"), "a second key has its own budget")
}

func TestNilClientAllowsEverything(t *testing.T) {
	rl := NewRateLimiter(nil, 1)

	for i := 0; i < 10; i++ {
		assert.True(t, rl.Allow(limiterRequest(), "key-001"))
	}
}

func TestRedisOutageFailsOpen(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	rl := NewRateLimiter(client, 1)

	require.True(t, rl.Allow(limiterRequest(), "key-001"))
	mr.Close()

	assert.True(t, rl.Allow(limiterRequest(), "key-001"), "limiter must not block when Redis is down")
}
