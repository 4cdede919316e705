package middleware

import (
	"time"

	"learnhub/services/metrics"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request count and latency labelled by route pattern.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveRequest(c.Route().Path, status, time.Since(start))
		return err
	}
}
