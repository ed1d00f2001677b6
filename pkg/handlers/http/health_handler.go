package http

import (
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/infra/annotate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type healthHandler struct {
	logger    *logrus.Logger
	redis     Pinger
	database  Pinger
	annotator annotate.Annotator
	index     TemplateIndex
}

func NewHealthHandler(
	logger *logrus.Logger,
	redis Pinger,
	database Pinger,
	annotator annotate.Annotator,
	index TemplateIndex,
) Handler {
	return &healthHandler{
		logger:    logger,
		redis:     redis,
		database:  database,
		annotator: annotator,
		index:     index,
	}
}

// Handle probes every backing component. A dead store degrades the
// service; a cold index only means the first request pays the warmup.
func (h *healthHandler) Handle(c *fiber.Ctx) error {
	components := fiber.Map{}
	healthy := true

	if err := h.redis.Ping(c.Context()); err != nil {
		h.logger.WithError(err).Error("redis health check failed")
		components["redis"] = "unhealthy"
		healthy = false
	} else {
		components["redis"] = "healthy"
	}

	if err := h.database.Ping(c.Context()); err != nil {
		h.logger.WithError(err).Error("database health check failed")
		components["database"] = "unhealthy"
		healthy = false
	} else {
		components["database"] = "healthy"
	}

	if h.annotator.Ready() {
		components["annotator"] = "ready"
	} else {
		components["annotator"] = "cold"
	}

	switch {
	case h.index == nil:
		components["template_index"] = "disabled"
	case h.index.Ready():
		components["template_index"] = "ready"
	default:
		components["template_index"] = "cold"
	}

	status := "healthy"
	code := fiber.StatusOK
	if !healthy {
		status = "degraded"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"time":       time.Now().Format(time.RFC3339),
		"components": components,
	})
}
