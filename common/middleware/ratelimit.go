package middleware

import (
	"sync"

	"chat-service/common/apperr"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. The bucket map is the
// only state shared across requests, guarded by the mutex.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	limiter, ok := rl.limiters[ip]
	if !ok {
		limiter = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[ip] = limiter
	}
	return limiter
}

// RateLimitHandlerGin rejects requests above the per-IP budget. The
// rejection is recorded for the error handler rather than written here.
func (rl *RateLimiter) RateLimitHandlerGin(c *gin.Context) {
	if !rl.limiterFor(c.ClientIP()).Allow() {
		_ = c.Error(apperr.NewRateLimitError("too many requests"))
		c.Abort()
		return
	}
	c.Next()
}
