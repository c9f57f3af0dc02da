package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/logger"
	"storefront/services"
)

// CounterStore is an increment-with-expiry counter. The fixed-window limiter
// is written against this interface so the in-process map can be swapped for
// a shared atomic store without changing the limiter's contract.
type CounterStore interface {
	// Incr bumps the counter for key and returns the new count. A fresh or
	// expired key restarts at 1 with its window anchored at the current time.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type rateLimitEntry struct {
	count   int64
	resetAt time.Time
}

// MemoryCounterStore keeps counters in process memory. State is lost on
// restart; that is an accepted limitation of the in-process backend.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetAt) {
		s.entries[key] = &rateLimitEntry{count: 1, resetAt: now.Add(window)}
		return 1, nil
	}

	entry.count++
	return entry.count, nil
}

// RedisCounterStore backs the limiter with shared Redis counters, surviving
// restarts and coordinating across instances.
type RedisCounterStore struct {
	client *redis.Client
	prefix string
}

func NewRedisCounterStore(client *redis.Client, prefix string) *RedisCounterStore {
	return &RedisCounterStore{client: client, prefix: prefix}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	fullKey := s.prefix + ":" + key
	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		// First hit in the window anchors the expiry.
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// RateLimiter is a fixed-window limiter: the counter resets at discrete
// window boundaries rather than sliding.
type RateLimiter struct {
	store       CounterStore
	maxRequests int64
	window      time.Duration
}

func NewRateLimiter(store CounterStore, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:       store,
		maxRequests: int64(maxRequests),
		window:      window,
	}
}

// Limit records an attempt for key and reports whether it is allowed.
func (rl *RateLimiter) Limit(ctx context.Context, key string) (bool, error) {
	count, err := rl.store.Incr(ctx, key, rl.window)
	if err != nil {
		return false, err
	}
	return count <= rl.maxRequests, nil
}

// RateLimit guards a route group with the given limiter, keyed by client IP.
// Store errors fail open: an unreachable counter backend must not lock
// everyone out of authentication.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := limiter.Limit(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Warn("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many attempts. Please try again later.",
				"code":  services.CodeRateLimitExceeded,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
