package middleware

import (
	"context"
	"fmt"
	"log"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Counter increments a fixed-window counter and reports the hits so far and the time left.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RedisCounter keeps windows in Redis with INCR and EXPIRE.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	// first hit opens the window
	if count == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return count, window, err
		}
		return count, window, nil
	}
	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, err
	}
	if ttl < 0 {
		// key lost its expiry; put it back so the window can close
		r.client.Expire(ctx, key, window)
		ttl = window
	}
	return count, ttl, nil
}

type RateLimiter struct {
	counter Counter
}

// NewRateLimiter returns a limiter; a nil counter lets every request through.
func NewRateLimiter(counter Counter) *RateLimiter {
	return &RateLimiter{counter: counter}
}

// Limit allows limit requests per client IP per window under keySuffix.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || rl.counter == nil || limit <= 0 {
			return c.Next()
		}

		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, c.IP())
		count, ttl, err := rl.counter.Incr(c.UserContext(), key, window)
		if err != nil {
			log.Printf("[RATE-LIMIT] %s: %v", key, err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
		if count > int64(limit) {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			return JsonResponse(c, fiber.StatusTooManyRequests, false, "Too many requests", nil)
		}
		c.Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
		return c.Next()
	}
}
