package middleware

import (
	"fmt"
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

// Middleware counts every request and observes its latency. Labels use
// the matched route pattern, not the raw path, to keep cardinality
// bounded.
func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		path := c.Route().Path
		status := c.Response().StatusCode()
		prometheus.RequestTotal.WithLabelValues(c.Method(), path, statusClass(status)).Inc()
		if prometheus.Config.EnableLatency {
			prometheus.RequestLatency.WithLabelValues(path).Observe(float64(time.Since(start).Milliseconds()))
		}

		return err
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return fmt.Sprintf("%dxx", code/100)
}
