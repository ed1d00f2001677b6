package middleware

import (
	"runtime/debug"

	"github.com/VettaLabs/ThesisGate/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type panicRecoverMiddleware struct {
	logger *logrus.Logger
}

func NewPanicRecoverMiddleware(logger *logrus.Logger) Middleware {
	return &panicRecoverMiddleware{logger: logger}
}

func (m *panicRecoverMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				m.logPanic(c, r)
				if c.Response().Header.StatusCode() == 0 {
					_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
						"error": "Internal server error",
					})
				}
			}
		}()

		return c.Next()
	}
}

func (m *panicRecoverMiddleware) logPanic(c *fiber.Ctx, r interface{}) {
	fields := logrus.Fields{
		"error": r,
		"path":  c.Path(),
		"stack": string(debug.Stack()),
	}
	if traceID, ok := c.Locals(common.TraceIdKey).(string); ok {
		fields["trace_id"] = traceID
	}
	m.logger.WithFields(fields).Error("HTTP server panic recovered")
}
