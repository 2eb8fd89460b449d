package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	lru "github.com/hashicorp/golang-lru"
	"github.com/vantage-club/clubgate/backend/utils"
)

// Per-IP entries beyond this are evicted least-recently-used, which bounds
// memory without a cleanup goroutine.
const rateLimiterSize = 4096

// RateLimiter implements a sliding-window rate limiter over an LRU cache
// of per-key request timestamps.
type RateLimiter struct {
	cache  *lru.Cache
	mutex  sync.Mutex
	window time.Duration
	limit  int
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	cache, _ := lru.New(rateLimiterSize)
	return &RateLimiter{
		cache:  cache,
		window: window,
		limit:  limit,
	}
}

// Allow checks if a request should be allowed
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	cutoff := now.Add(-rl.window)

	var requests []time.Time
	if cached, ok := rl.cache.Get(key); ok {
		requests = cached.([]time.Time)
	}

	// Drop requests that fell out of the window.
	valid := requests[:0]
	for _, req := range requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}

	if len(valid) >= rl.limit {
		rl.cache.Add(key, valid)
		return false
	}

	valid = append(valid, now)
	rl.cache.Add(key, valid)
	return true
}

// RateLimit middleware limits requests per IP address
func RateLimit(limit int, window time.Duration) fiber.Handler {
	limiter := NewRateLimiter(limit, window)

	return func(c *fiber.Ctx) error {
		ip := utils.GetIPAddress(c)

		if !limiter.Allow(ip) {
			slog.Warn("Rate limit exceeded",
				slog.String("type", "http"),
				slog.String("ip", ip),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.Int("limit", limit),
				slog.Duration("window", window))

			return utils.SendError(c, fiber.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.", nil)
		}

		return c.Next()
	}
}

// RedemptionRateLimit limits claim redemption attempts per IP
func RedemptionRateLimit() fiber.Handler {
	return RateLimit(20, time.Minute)
}

// WebhookRateLimit limits payment webhook deliveries per IP
func WebhookRateLimit() fiber.Handler {
	return RateLimit(120, time.Minute)
}
