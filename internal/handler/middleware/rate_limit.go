package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"coach-booking/internal/handler/httperr"
	"coach-booking/internal/pkg/config"
	"coach-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterSweepSize = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles booking attempts per authenticated user, or per client IP when
// the caller is anonymous.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	every    rate.Limit
	burst    int
	now      func() time.Time
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	perMinute := max(cfg.BookingsPerMinute, 1)
	return &RateLimiter{
		limiters: make(map[string]*limiterEntry),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    max(cfg.Burst, 1),
		now:      time.Now,
	}
}

func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := GetUserID(c); ok {
			key = "user:" + userID.String()
		}

		if !r.allow(key) {
			slog.Warn("Rate limit exceeded", "key", key, "path", c.Request.URL.Path)
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded. Try again later.", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, exists := r.limiters[key]
	if !exists {
		if len(r.limiters) >= limiterSweepSize {
			r.sweep(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(r.every, r.burst)}
		r.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops limiters that have been idle long enough to be full again.
func (r *RateLimiter) sweep(now time.Time) {
	for key, entry := range r.limiters {
		if now.Sub(entry.lastSeen) > limiterIdleTTL {
			delete(r.limiters, key)
		}
	}
}
