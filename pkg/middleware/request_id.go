package middleware

import (
	"context"

	"github.com/VettaLabs/ThesisGate/pkg/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type requestIDMiddleware struct {
	logger *logrus.Logger
}

func NewRequestIDMiddleware(logger *logrus.Logger) Middleware {
	return &requestIDMiddleware{logger: logger}
}

// Middleware tags every request with a trace id and echoes it back in
// the response. An inbound X-Request-Id is honored so callers can
// correlate across services.
func (m *requestIDMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id := ctx.Get(common.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		ctx.Locals(common.TraceIdKey, id)
		ctx.Set(common.RequestIDHeader, id)

		c := context.WithValue(ctx.Context(), common.TraceIdKey, id)
		ctx.SetUserContext(c)
		return ctx.Next()
	}
}
