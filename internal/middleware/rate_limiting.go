package middleware

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"fitlog/internal/metrics"

	"github.com/go-redis/redis_rate/v9"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per client IP for the routes it guards.
// When the limiter itself fails the request is let through.
func RateLimit(rateLimiter RequestRateLimiter, routerName string, allowedPerMin int, metricsManager *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := rateLimiter.Allow(
			c.UserContext(),
			routerName+":"+c.IP(),
			redis_rate.PerMinute(allowedPerMin),
		)
		if err != nil {
			log.WithError(err).WithField("router", routerName).Error("Rate limiter failed")
			return c.Next()
		}

		if res.Allowed > 0 {
			return c.Next()
		}

		if metricsManager != nil {
			metricsManager.CounterRateLimited.Inc()
		}
		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": fmt.Sprintf("Too many requests, retry after %d seconds", retryAfter),
		})
	}
}
