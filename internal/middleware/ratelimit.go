package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// BusinessRateLimiter applies a token-bucket limit per business.
type BusinessRateLimiter struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*limiterEntry
	rate     rate.Limit
	burst    int
	entryTTL time.Duration
	now      func() time.Time
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewBusinessRateLimiter creates a limiter allowing rps requests per second
// with the given burst for each business.
func NewBusinessRateLimiter(rps float64, burst int, entryTTL time.Duration) *BusinessRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &BusinessRateLimiter{
		limiters: make(map[uuid.UUID]*limiterEntry),
		rate:     rate.Limit(rps),
		burst:    burst,
		entryTTL: entryTTL,
		now:      time.Now,
	}
}

func (rl *BusinessRateLimiter) limiterFor(businessID uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if e, ok := rl.limiters[businessID]; ok {
		e.lastSeen = now
		return e.limiter
	}
	l := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[businessID] = &limiterEntry{limiter: l, lastSeen: now}
	return l
}

// Cleanup removes limiters that have not been used within the entry TTL.
func (rl *BusinessRateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-rl.entryTTL)
	removed := 0
	for id, e := range rl.limiters {
		if e.lastSeen.Before(cutoff) {
			delete(rl.limiters, id)
			removed++
		}
	}
	return removed
}

// Run periodically calls Cleanup until stop is closed.
func (rl *BusinessRateLimiter) Run(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}

// Middleware returns Gin middleware enforcing the limit. Requests without
// business context pass through; it must run after AuthMiddleware.
func (rl *BusinessRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessID, err := GetBusinessID(c)
		if err != nil {
			c.Next()
			return
		}

		limiter := rl.limiterFor(businessID)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   gin.H{"code": "RATE_LIMITED", "message": "too many requests; try again shortly"},
			})
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
