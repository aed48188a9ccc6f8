package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// fixedWindowLua increments the per-client counter and starts the window on
// the first hit. Counting and expiry setup run atomically inside redis.
const fixedWindowLua = `
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`

// Limiter is a redis-backed fixed-window rate limiter.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	logger *logrus.Logger
	script *redis.Script
}

// New creates a limiter allowing limit requests per window per key.
func New(rdb *redis.Client, logger *logrus.Logger, prefix string, limit int, window time.Duration) *Limiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &Limiter{
		rdb:    rdb,
		prefix: prefix,
		limit:  limit,
		window: window,
		logger: logger,
		script: redis.NewScript(fixedWindowLua),
	}
}

// Allow reports whether the request identified by key is within the limit.
// Redis being unreachable fails open: the request proceeds and a warning is
// logged, since throttling is not worth taking auth down for.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.limit <= 0 {
		return true
	}
	count, err := l.script.Run(ctx, l.rdb, []string{l.prefix + key}, l.window.Milliseconds()).Int()
	if err != nil {
		if l.logger != nil {
			l.logger.WithError(err).Warn("rate limiter unavailable, allowing request")
		}
		return true
	}
	return count <= l.limit
}

// Middleware returns an Echo middleware limiting by client IP.
func (l *Limiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.Request().Context(), c.RealIP()) {
				return echo.NewHTTPError(http.StatusTooManyRequests,
					fmt.Sprintf("rate limit exceeded, try again in %s", l.window))
			}
			return next(c)
		}
	}
}
