package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders adds security-related headers to all responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate")
		c.Next()
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttle is a per-IP token-bucket limiter applied to all routes. It bounds
// overall request throughput; the fixed-window limiter on the auth endpoints
// is a separate concern.
type Throttle struct {
	ips   map[string]*limiterEntry
	mu    sync.Mutex
	rate  rate.Limit
	burst int
	ttl   time.Duration
}

func NewThrottle(r rate.Limit, burst int, ttl time.Duration) *Throttle {
	t := &Throttle{
		ips:   make(map[string]*limiterEntry),
		rate:  r,
		burst: burst,
		ttl:   ttl,
	}

	// Periodic cleanup of stale entries to avoid unbounded map growth
	go func() {
		ticker := time.NewTicker(ttl)
		defer ticker.Stop()
		for range ticker.C {
			t.mu.Lock()
			now := time.Now()
			for ip, e := range t.ips {
				if now.Sub(e.lastSeen) > t.ttl {
					delete(t.ips, ip)
				}
			}
			t.mu.Unlock()
		}
	}()

	return t
}

func (t *Throttle) getLimiter(ip string) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, exists := t.ips[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(t.rate, t.burst)}
		t.ips[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter
}

// ThrottleMiddleware creates the global throughput-limiting middleware:
// 100 requests per minute per IP with a burst of 50.
func ThrottleMiddleware() gin.HandlerFunc {
	throttle := NewThrottle(rate.Every(time.Minute/100), 50, time.Minute*5)

	return func(c *gin.Context) {
		if !throttle.getLimiter(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
			c.Abort()
			return
		}
		c.Next()
	}
}
