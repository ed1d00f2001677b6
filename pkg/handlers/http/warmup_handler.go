package http

import (
	"github.com/VettaLabs/ThesisGate/pkg/infra/annotate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type warmupHandler struct {
	logger    *logrus.Logger
	annotator annotate.Annotator
	index     TemplateIndex
}

func NewWarmupHandler(logger *logrus.Logger, annotator annotate.Annotator, index TemplateIndex) Handler {
	return &warmupHandler{
		logger:    logger,
		annotator: annotator,
		index:     index,
	}
}

// Handle eagerly builds the lazy handles so the first real request does
// not pay lexicon compilation or template embedding latency.
func (h *warmupHandler) Handle(c *fiber.Ctx) error {
	components := fiber.Map{}
	warm := true

	if err := h.annotator.Warmup(); err != nil {
		h.logger.WithError(err).Error("Failed to warm annotator")
		components["annotator"] = "failed"
		warm = false
	} else {
		components["annotator"] = "ready"
	}

	switch {
	case h.index == nil:
		components["template_index"] = "disabled"
	default:
		if err := h.index.Warmup(c.Context()); err != nil {
			h.logger.WithError(err).Error("Failed to build template index")
			components["template_index"] = "failed"
			warm = false
		} else {
			components["template_index"] = "ready"
		}
	}

	status := "warm"
	code := fiber.StatusOK
	if !warm {
		status = "partial"
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":     status,
		"components": components,
	})
}
