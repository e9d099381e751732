package middleware

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"

	"github.com/harisha-viswa/hiring-system/internal/delivery/http/response"
	"github.com/harisha-viswa/hiring-system/pkg/logger"
)

// RateLimitConfig holds the fixed-window limiter settings.
type RateLimitConfig struct {
	Window    time.Duration
	Threshold int
	// Redis may be nil; the limiter then falls back to per-process counters.
	Redis *goredis.Client
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// RateLimit counts requests per client IP in a fixed window. With Redis the
// counter is shared across instances; without it each instance counts on its
// own, which is weaker but still bounds a single process.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		counters = make(map[string]*windowCounter)
	)

	allowLocal := func(ip string) bool {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		c, ok := counters[ip]
		if !ok || now.After(c.resetAt) {
			counters[ip] = &windowCounter{count: 1, resetAt: now.Add(cfg.Window)}
			return true
		}
		c.count++
		return c.count <= cfg.Threshold
	}

	allowRedis := func(ctx context.Context, ip string) (bool, error) {
		key := fmt.Sprintf("ratelimit:%s:%d", ip, time.Now().Unix()/int64(cfg.Window.Seconds()))
		count, err := cfg.Redis.Incr(ctx, key).Result()
		if err != nil {
			return false, err
		}
		if count == 1 {
			cfg.Redis.Expire(ctx, key, cfg.Window)
		}
		return count <= int64(cfg.Threshold), nil
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed := true
		if cfg.Redis != nil {
			var err error
			allowed, err = allowRedis(c.Request.Context(), ip)
			if err != nil {
				// Redis being down must not take the API with it.
				logger.Log.Warn("rate limiter falling back to local counters", "error", err)
				allowed = allowLocal(ip)
			}
		} else {
			allowed = allowLocal(ip)
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "Too many requests. Please slow down.", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
