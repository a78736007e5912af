// README: Fixed-window rate limit per client IP, counted in Redis.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RateLimiter allows limit requests per client IP per window.
// Redis failures let the request through.
type RateLimiter struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	log    zerolog.Logger
	now    func() time.Time
}

func NewRateLimiter(rdb redis.Cmdable, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, log: log, now: time.Now}
}

// Allow counts one request for key and reports whether it fits in the current window,
// plus how long until the window resets.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	now := rl.now()
	bucket := now.UnixNano() / int64(rl.window)
	redisKey := fmt.Sprintf("tripmind:ratelimit:%s:%d", key, bucket)
	reset := time.Duration((bucket+1)*int64(rl.window) - now.UnixNano())

	pipe := rl.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, 0, err
	}
	return incr.Val() <= int64(rl.limit), reset, nil
}

// Middleware rejects over-limit requests with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}
		ok, reset, err := rl.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			rl.log.Warn().Err(err).Str("remote", c.ClientIP()).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if !ok {
			secs := int(reset.Seconds())
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  "rate limit exceeded",
				"detail": fmt.Sprintf("at most %d requests per %s", rl.limit, rl.window),
			})
			return
		}
		c.Next()
	}
}
