package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per caller: the authenticated
// user when there is one, the client IP otherwise.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    time.Duration
	burst    int
	log      *zap.Logger
}

// NewRateLimiter allows perMinute requests per caller with the given
// burst. perMinute <= 0 disables limiting.
func NewRateLimiter(perMinute, burst int, log *zap.Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	var every time.Duration
	if perMinute > 0 {
		every = time.Minute / time.Duration(perMinute)
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
		burst:    burst,
		log:      log,
	}
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(l.every), l.burst)
		l.limiters[key] = lim
	}
	return lim
}

func callerKey(c *gin.Context) string {
	if id := UserID(c); id != nil {
		return fmt.Sprintf("user:%d", *id)
	}
	return "ip:" + c.ClientIP()
}

func (l *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.every == 0 {
			c.Next()
			return
		}

		key := callerKey(c)
		if !l.limiter(key).Allow() {
			l.log.Warn("rate limit exceeded",
				zap.String("caller", key),
				zap.String("path", c.FullPath()),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate_limit_exceeded"})
			return
		}
		c.Next()
	}
}
