package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/authgate/auth-api/internal/api/metrics"
	"github.com/authgate/auth-api/internal/infrastructure/db/redis"
)

const rateLimitMessage = "Too many requests, please try again later."

// Limiter is a shared request counter keyed by client.
type Limiter interface {
	Allow(ctx context.Context, key string) (redis.Decision, error)
}

// RateLimitConfig configures RateLimit. A nil Limiter selects echo's
// in-process memory store.
type RateLimitConfig struct {
	Limiter     Limiter
	MaxRequests int
	Window      time.Duration
	Skipper     echomiddleware.Skipper
	Logger      zerolog.Logger
}

// RateLimit rejects clients, keyed by real IP, that exceed MaxRequests per
// Window with 429.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}
	if cfg.Limiter == nil {
		return memoryRateLimit(cfg)
	}
	return sharedRateLimit(cfg)
}

func sharedRateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			d, err := cfg.Limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				// Fail open.
				cfg.Logger.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if !d.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
			}
			return next(c)
		}
	}
}

func memoryRateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.MaxRequests <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(cfg.MaxRequests) / cfg.Window.Seconds()),
		Burst:     cfg.MaxRequests,
		ExpiresIn: cfg.Window,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Skipper: cfg.Skipper,
		Store:   store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			metrics.RateLimitedTotal.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
		},
	})
}
