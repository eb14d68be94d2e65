package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// loginLimiters keeps one token bucket per client IP for the admin login
// endpoint. Entries are never evicted; the admin surface sees a handful of
// IPs in practice.
type loginLimiters struct {
	mu  sync.Mutex
	ips map[string]*rate.Limiter
}

func (ll *loginLimiters) get(ip string) *rate.Limiter {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	lim, ok := ll.ips[ip]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/5), 5)
		ll.ips[ip] = lim
	}
	return lim
}

// NewStrictRateLimiter allows 5 attempts per minute per IP. Used on login
// only; everything else is unthrottled.
func NewStrictRateLimiter() gin.HandlerFunc {
	limiters := &loginLimiters{ips: make(map[string]*rate.Limiter)}
	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
