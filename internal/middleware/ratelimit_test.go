// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// An unreachable redis address forces every Allow call onto the local
// fallback limiter, keeping these tests in-process.
func newBadgeLimitedHandler(t *testing.T, limits map[string]BadgeConfig) http.Handler {
	t.Helper()

	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = rdb.Close() })

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return BadgeRateLimiter(rdb, limits)(next)
}

func anonRequest(remoteAddr string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/feed", nil)
	r.RemoteAddr = remoteAddr
	return r
}

func authedRequest(remoteAddr, userID, badge string) *http.Request {
	r := anonRequest(remoteAddr)
	ctx := context.WithValue(r.Context(), UserIDKey, userID)
	ctx = context.WithValue(ctx, UserBadgeKey, badge)
	return r.WithContext(ctx)
}

func TestBadgeRateLimiter_AnonymousClientsKeyedByIP(t *testing.T) {
	handler := newBadgeLimitedHandler(t, map[string]BadgeConfig{
		"none": {RequestsPerMinute: 1, BurstSize: 1},
	})

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, anonRequest("10.0.0.1:5000"))
	require.Equal(t, http.StatusOK, first.Code)

	// A different client is not throttled by the first one's traffic.
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, anonRequest("10.0.0.2:5000"))
	assert.Equal(t, http.StatusOK, second.Code)

	// The first client's own budget is spent.
	third := httptest.NewRecorder()
	handler.ServeHTTP(third, anonRequest("10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
}

func TestBadgeRateLimiter_AuthedUserSeparateFromIP(t *testing.T) {
	handler := newBadgeLimitedHandler(t, map[string]BadgeConfig{
		"none":     {RequestsPerMinute: 1, BurstSize: 1},
		"verified": {RequestsPerMinute: 1, BurstSize: 1},
	})

	anon := httptest.NewRecorder()
	handler.ServeHTTP(anon, anonRequest("10.0.0.3:5000"))
	require.Equal(t, http.StatusOK, anon.Code)

	exhausted := httptest.NewRecorder()
	handler.ServeHTTP(exhausted, anonRequest("10.0.0.3:5000"))
	require.Equal(t, http.StatusTooManyRequests, exhausted.Code)

	// A logged-in user behind the same IP has their own bucket.
	authed := httptest.NewRecorder()
	handler.ServeHTTP(authed, authedRequest("10.0.0.3:5000", "alice", "verified"))
	assert.Equal(t, http.StatusOK, authed.Code)
}

func TestBadgeRateLimiter_BadgeTierSelectsLimit(t *testing.T) {
	handler := newBadgeLimitedHandler(t, map[string]BadgeConfig{
		"none": {RequestsPerMinute: 1, BurstSize: 1},
		"gold": {RequestsPerMinute: 100, BurstSize: 100},
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, authedRequest("10.0.0.4:5000", "goldie", "gold"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gold", w.Header().Get("X-RateLimit-Badge"))
	}
}
