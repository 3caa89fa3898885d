package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"showtime-booking/internal/handler/httperr"
	"showtime-booking/internal/pkg/config"
	"showtime-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter holds one token bucket per client IP. Idle buckets are
// swept so the map does not grow without bound.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rps      rate.Limit
	burst    int
	idle     time.Duration
	lastGC   time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		rps:      rate.Limit(cfg.RPS),
		burst:    cfg.Burst,
		idle:     10 * time.Minute,
	}
}

func (r *RateLimiter) getLimiter(ip string, now time.Time) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if now.Sub(r.lastGC) > r.idle {
		for k, e := range r.limiters {
			if now.Sub(e.lastSeen) > r.idle {
				delete(r.limiters, k)
			}
		}
		r.lastGC = now
	}

	e, exists := r.limiters[ip]
	if !exists {
		e = &limiterEntry{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.limiters[ip] = e
	}
	e.lastSeen = now
	return e.limiter
}

// Middleware limits requests per client IP.
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !r.getLimiter(ip, time.Now()).Allow() {
			slog.Warn("Rate limit exceeded", "ip", ip, "path", c.FullPath())
			c.Header("Retry-After", "1")
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}
