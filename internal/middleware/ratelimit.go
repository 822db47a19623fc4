package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter counts attempts per key within a fixed window
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter is a fixed-window counter stored in Redis, shared by all instances
type RedisRateLimiter struct {
	client  *redis.Client
	prefix  string
	limit   int64
	window  time.Duration
	timeout time.Duration
}

// NewRedisRateLimiter connects to redisURL and verifies it with a ping
func NewRedisRateLimiter(redisURL string, limit int, window time.Duration) (*RedisRateLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisRateLimiter(client, limit, window), nil
}

func newRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RedisRateLimiter{
		client:  client,
		prefix:  "founderhub:ratelimit:",
		limit:   int64(limit),
		window:  window,
		timeout: 250 * time.Millisecond,
	}
}

// Allow increments the counter for key and reports whether it is still within the limit
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if rl.limit <= 0 {
		return true, nil
	}
	ctx, cancel := context.WithTimeout(ctx, rl.timeout)
	defer cancel()

	// INCR and EXPIRE NX go out as one MULTI so a counter never lives without a TTL.
	// NX keeps the window fixed from the first attempt.
	redisKey := rl.prefix + key
	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, rl.window)
		return nil
	})
	if err != nil {
		return true, fmt.Errorf("redis incr: %w", err)
	}
	return incr.Val() <= rl.limit, nil
}

// Close releases the Redis connection pool
func (rl *RedisRateLimiter) Close() error {
	return rl.client.Close()
}

// RateLimit rejects requests over the limiter's budget with 429, keyed by scope and client IP.
// Limiter failures are logged and the request is let through.
func RateLimit(limiter RateLimiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		allowed, err := limiter.Allow(c.Request.Context(), scope+":"+c.ClientIP())
		if err != nil {
			log.Printf("ERROR: rate limiter unavailable for %s: %v", scope, err)
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
