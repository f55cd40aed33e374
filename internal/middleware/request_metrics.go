package middleware

import (
	"strconv"
	"time"

	"fitlog/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records the count, duration and concurrency of requests.
// Errors returned by later handlers are rendered here so the final status is counted.
func RequestMetrics(metricsManager *metrics.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		metricsManager.GaugeRequests.Inc()
		defer metricsManager.GaugeRequests.Dec()

		defer func(begin time.Time) {
			metricsManager.HistRequestDuration.Observe(time.Since(begin).Seconds())
		}(time.Now())

		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		metricsManager.CounterRequests.With(
			prometheus.Labels{
				"method": c.Method(),
				"status": strconv.Itoa(c.Response().StatusCode()),
			},
		).Inc()
		return nil
	}
}
