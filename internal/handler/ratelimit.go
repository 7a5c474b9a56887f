package handler

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
}

// RateLimiter applies a global budget plus one per client IP.
type RateLimiter struct {
	config RateLimitConfig

	globalLimiter  *rate.Limiter
	clientLimiters sync.Map
}

func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.RequestsPerMinute <= 0 {
		cfg.RequestsPerMinute = 600
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 60
	}
	return &RateLimiter{
		config: cfg,
		globalLimiter: rate.NewLimiter(
			rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
			cfg.Burst,
		),
	}
}

func (rl *RateLimiter) clientLimiter(key string) *rate.Limiter {
	// A single client gets a tenth of the global budget, never less than one per minute.
	perClient := rl.config.RequestsPerMinute / 10
	if perClient < 1 {
		perClient = 1
	}
	burst := rl.config.Burst / 10
	if burst < 1 {
		burst = 1
	}

	limiter, _ := rl.clientLimiters.LoadOrStore(key, rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(perClient)),
		burst,
	))
	return limiter.(*rate.Limiter)
}

func (rl *RateLimiter) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rl.globalLimiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Global rate limit exceeded",
			})
		}

		if !rl.clientLimiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Client rate limit exceeded",
			})
		}

		return c.Next()
	}
}
