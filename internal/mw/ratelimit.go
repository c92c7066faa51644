package mw

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Fallbacks when the server config leaves the limits unset.
const (
	defaultRatePerSec = 10
	defaultRateBurst  = 5
)

// ipRateLimiter hands out one token bucket per client IP.
type ipRateLimiter struct {
	mu    sync.RWMutex
	ips   map[string]*rate.Limiter
	rate  rate.Limit
	burst int
}

func (i *ipRateLimiter) limiter(ip string) *rate.Limiter {
	i.mu.RLock()
	limiter, exists := i.ips[ip]
	i.mu.RUnlock()
	if exists {
		return limiter
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if limiter, exists = i.ips[ip]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(i.rate, i.burst)
	i.ips[ip] = limiter
	return limiter
}

// RateLimiter is a middleware for IP-based rate limiting. Non-positive
// perSec or burst values fall back to the server defaults.
func RateLimiter(perSec float64, burst int) gin.HandlerFunc {
	if perSec <= 0 {
		perSec = defaultRatePerSec
	}
	if burst <= 0 {
		burst = defaultRateBurst
	}

	limiters := &ipRateLimiter{
		ips:   make(map[string]*rate.Limiter),
		rate:  rate.Limit(perSec),
		burst: burst,
	}
	return func(c *gin.Context) {
		if !limiters.limiter(c.ClientIP()).Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
