package middleware

import (
	"github.com/labstack/echo/v4"

	"chronova/internal/infrastructure/ratelimit"
	"chronova/pkg/errors"
	"chronova/pkg/logger"
	"chronova/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles requests per client IP under the given action name.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := m.limiter.Allow(ip, action)
			if !allowed {
				logger.Warn("Rate limit hit: ip=%s action=%s retry_in=%s", ip, action, wait)
				return response.Error(c, errors.TooManyRequests("Too many requests, please slow down", wait))
			}

			return next(c)
		}
	}
}
