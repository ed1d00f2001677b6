package http

import (
	"github.com/VettaLabs/ThesisGate/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type getVersionHandler struct {
	logger *logrus.Logger
}

func NewGetVersionHandler(logger *logrus.Logger) Handler {
	return &getVersionHandler{
		logger: logger,
	}
}

// Handle serves the service banner. Doubles as the root endpoint so a
// bare GET / tells a client where the real routes live.
func (h *getVersionHandler) Handle(c *fiber.Ctx) error {
	info := version.GetInfo()
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"service":    info.AppName,
		"version":    info.Version,
		"go_version": info.GoVersion,
		"platform":   info.Platform,
		"endpoints": fiber.Map{
			"moderation": "POST /api/v1/moderation",
			"analysis":   "POST /api/v1/analysis",
			"reviews":    "POST /api/v1/reviews",
			"warmup":     "POST /api/v1/warmup",
			"health":     "GET /health",
		},
	})
}
