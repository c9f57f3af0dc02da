package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"storefront/logger"
)

func newTestLimiter(max int, window time.Duration) (*RateLimiter, *MemoryCounterStore, *time.Time) {
	store := NewMemoryCounterStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	return NewRateLimiter(store, max, window), store, &now
}

func TestLimit_AllowsUpToMaxWithinWindow(t *testing.T) {
	limiter, _, _ := newTestLimiter(5, 15*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		ok, err := limiter.Limit(ctx, "k")
		assert.NoError(t, err)
		assert.True(t, ok, "attempt %d should be allowed", i+1)
	}

	ok, err := limiter.Limit(ctx, "k")
	assert.NoError(t, err)
	assert.False(t, ok, "sixth attempt should be rejected")
}

func TestLimit_ResetsAfterWindow(t *testing.T) {
	window := 15 * time.Minute
	limiter, store, now := newTestLimiter(5, window)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		limiter.Limit(ctx, "k")
	}

	*now = now.Add(window + time.Second)
	store.now = func() time.Time { return *now }

	ok, err := limiter.Limit(ctx, "k")
	assert.NoError(t, err)
	assert.True(t, ok, "attempt after window expiry should reset the counter")

	// Counter restarted at 1; four more fit in the new window.
	for i := 0; i < 4; i++ {
		ok, _ := limiter.Limit(ctx, "k")
		assert.True(t, ok)
	}
	ok, _ = limiter.Limit(ctx, "k")
	assert.False(t, ok)
}

func TestLimit_KeysAreIndependent(t *testing.T) {
	limiter, _, _ := newTestLimiter(1, time.Minute)
	ctx := context.Background()

	ok, _ := limiter.Limit(ctx, "a")
	assert.True(t, ok)
	ok, _ = limiter.Limit(ctx, "a")
	assert.False(t, ok)

	ok, _ = limiter.Limit(ctx, "b")
	assert.True(t, ok, "a different key has its own window")
}

func TestRedisCounterStore_FixedWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisCounterStore(client, "ratelimit:signin")
	limiter := NewRateLimiter(store, 2, time.Minute)
	ctx := context.Background()

	ok, err := limiter.Limit(ctx, "1.2.3.4")
	assert.NoError(t, err)
	assert.True(t, ok)
	ok, _ = limiter.Limit(ctx, "1.2.3.4")
	assert.True(t, ok)
	ok, _ = limiter.Limit(ctx, "1.2.3.4")
	assert.False(t, ok)

	mr.FastForward(time.Minute + time.Second)

	ok, err = limiter.Limit(ctx, "1.2.3.4")
	assert.NoError(t, err)
	assert.True(t, ok, "counter should expire with the window")
}

func TestRateLimitMiddleware_RejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger.Initialize("test")

	limiter, _, _ := newTestLimiter(1, time.Minute)

	r := gin.New()
	r.POST("/login", RateLimit(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "error")
}
