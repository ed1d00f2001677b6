package middleware

import (
	"strings"

	"github.com/VettaLabs/ThesisGate/pkg/infra/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const bearerPrefix = "Bearer "

// adminAuthMiddleware guards the review-queue routes. Tokens are minted
// out of band for the moderation team; there is no user-facing login.
type adminAuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token, reason := bearerToken(ctx)
		if token == "" {
			m.logger.WithField("reason", reason).Debug("admin request without usable credentials")
			return unauthorized(ctx, reason)
		}

		if err := m.jwtManager.ValidateToken(token); err != nil {
			m.logger.WithError(err).Debug("admin token rejected")
			return unauthorized(ctx, "invalid token")
		}

		return ctx.Next()
	}
}

// bearerToken pulls the token out of the Authorization header. The
// second return names what was wrong whenever the first is empty.
func bearerToken(ctx *fiber.Ctx) (string, string) {
	header := ctx.Get(fiber.HeaderAuthorization)
	switch {
	case header == "":
		return "", "authorization required"
	case !strings.HasPrefix(header, bearerPrefix):
		return "", "authorization must use a bearer token"
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", "empty bearer token"
	}
	return token, ""
}

func unauthorized(ctx *fiber.Ctx, reason string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": reason})
}
