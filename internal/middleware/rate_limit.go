package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"psytech/internal/lib/logger/sl"
	"psytech/internal/metrics"
	"psytech/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects clients over the limiter's quota with 429. The key is
// scope plus the client IP. Limiter errors let the request through.
func RateLimit(log *slog.Logger, limiter RateLimiter, scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			const op = "middleware.RateLimit"

			ip := c.RealIP()

			allowed, err := limiter.Allow(c.Request().Context(), scope+":"+ip)
			if err != nil {
				log.Warn("rate limit check failed, allowing request",
					slog.String("op", op),
					slog.String("scope", scope),
					sl.Err(err),
				)
				return next(c)
			}

			if !allowed {
				metrics.RateLimitedTotal.Inc()
				log.Info("rate limit exceeded",
					slog.String("op", op),
					slog.String("scope", scope),
					slog.String("remote_ip", ip),
				)
				return c.JSON(http.StatusTooManyRequests, response.ErrRateLimited)
			}

			return next(c)
		}
	}
}
