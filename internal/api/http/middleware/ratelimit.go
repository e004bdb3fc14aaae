package middleware

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window per-IP limiter applied uniformly across all
// API routes. With a Redis client the window counters are shared across
// instances; without one it falls back to an in-process counter map.
type RateLimiter struct {
	window time.Duration
	max    int
	rdb    *redis.Client

	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count int
	reset time.Time
}

func NewRateLimiter(rdb *redis.Client, windowDur time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  windowDur,
		max:     max,
		rdb:     rdb,
		windows: make(map[string]*window),
	}
}

// Handler returns the Gin middleware enforcing the limit.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, err := rl.allow(c, ip)
		if err != nil {
			// A broken limiter store should not take the API down.
			log.Printf("[ratelimit] store error, allowing request: %v", err)
			c.Next()
			return
		}

		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests from this IP, please try again later.",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(c *gin.Context, ip string) (bool, error) {
	if rl.rdb != nil {
		return rl.allowRedis(c, ip)
	}
	return rl.allowLocal(ip), nil
}

func (rl *RateLimiter) allowRedis(c *gin.Context, ip string) (bool, error) {
	key := "ratelimit:" + ip
	ctx := c.Request.Context()

	pipe := rl.rdb.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= int64(rl.max), nil
}

func (rl *RateLimiter) allowLocal(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, ok := rl.windows[ip]
	if !ok || now.After(w.reset) {
		rl.windows[ip] = &window{count: 1, reset: now.Add(rl.window)}
		return true
	}

	w.count++
	return w.count <= rl.max
}
