package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Limiter enforces a fixed-window request limit per client. With Redis it
// counts in INCR/EXPIRE windows shared across instances; without Redis it
// degrades to per-client token buckets in process.
type Limiter struct {
	rdb    *redis.Client
	window time.Duration
	limit  int

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

func New(rdb *redis.Client, window time.Duration, limit int) *Limiter {
	return &Limiter{
		rdb:    rdb,
		window: window,
		limit:  limit,
		local:  make(map[string]*rate.Limiter),
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.rdb == nil {
		return l.allowLocal(key), nil
	}

	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() <= int64(l.limit), nil
}

func (l *Limiter) allowLocal(key string) bool {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(l.limit)/l.window.Seconds()), l.limit)
		l.local[key] = lim
	}
	l.mu.Unlock()
	return lim.Allow()
}

// Middleware limits by client IP. Limiter errors fail open: a Redis outage
// must not take the API down with it.
func Middleware(l *Limiter, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
