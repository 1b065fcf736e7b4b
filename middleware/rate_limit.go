package middleware

import (
	"net/http"
	"sync"
	"time"

	"hotel-ops/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"go.uber.org/zap"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP and forgets IPs that
// have been idle longer than ttl.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	reqPerMin int
	burst     int
	ttl       time.Duration
}

func NewIPRateLimiter(reqPerMin, burst int, ttl time.Duration) *IPRateLimiter {
	if reqPerMin <= 0 {
		reqPerMin = 30
	}
	if burst <= 0 {
		burst = 1
	}
	return &IPRateLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
	}
}

func (rl *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}

	rps := float64(rl.reqPerMin) / 60.0
	limiter := rate.NewLimiter(rate.Limit(rps), rl.burst)
	rl.visitors[ip] = &visitor{limiter: limiter, lastSeen: time.Now()}
	return limiter
}

func (rl *IPRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if time.Since(v.lastSeen) > rl.ttl {
			delete(rl.visitors, ip)
		}
	}
}

// RunCleanup prunes idle visitors every minute until stop is closed.
func (rl *IPRateLimiter) RunCleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-stop:
			return
		}
	}
}

func RateLimitByIP(rl *IPRateLimiter, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if !rl.getLimiter(ip).Allow() {
			logger.Warn("rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Request.URL.Path))
			utils.AbortJSONError(c, http.StatusTooManyRequests, "Too Many Requests")
			return
		}
		c.Next()
	}
}
