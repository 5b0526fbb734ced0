package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lookingup/lookingup-api/internal/pkg/httputil"
	"github.com/lookingup/lookingup-api/internal/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a per-key fixed-window request budget on Redis.
// INCR + EXPIRE on a minute-bucketed key keeps concurrent requests atomic
// without a local lock. A nil client disables limiting entirely.
type RateLimiter struct {
	client *redis.Client
	limit  int
}

// NewRateLimiter creates a limiter allowing limit requests per minute per
// API key. client may be nil to disable.
func NewRateLimiter(client *redis.Client, limit int) *RateLimiter {
	return &RateLimiter{client: client, limit: limit}
}

// Allow reports whether the key has budget left in the current window.
// Redis failures fail open: throttling is protective, not billable, so an
// outage must not take the API down with it.
func (rl *RateLimiter) Allow(r *http.Request, keyID string) bool {
	if rl == nil || rl.client == nil {
		return true
	}

	window := time.Now().UTC().Unix() / 60
	bucket := fmt.Sprintf("ratelimit:%s:%d", keyID, window)

	pipe := rl.client.TxPipeline()
	count := pipe.Incr(r.Context(), bucket)
	pipe.Expire(r.Context(), bucket, 2*time.Minute)
	if _, err := pipe.Exec(r.Context()); err != nil {
		logger.Warn("rate limit check failed, allowing request", "key_id", keyID, "error", err)
		return true
	}
	return count.Val() <= int64(rl.limit)
}

// Middleware rejects requests over the per-key budget with 429. Must run
// after RequireAPIKey so the key identity is available.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac := AuthContextFrom(r.Context())
		if ac != nil && !rl.Allow(r, ac.KeyID) {
			httputil.TooManyRequests(w, fmt.Sprintf("rate limit exceeded (%d requests/minute)", rl.limit))
			return
		}
		next.ServeHTTP(w, r)
	})
}
