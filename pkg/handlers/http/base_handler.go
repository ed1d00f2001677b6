package http

import (
	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// moderationErrorResponse maps pipeline errors onto wire statuses.
// Invalid input is the caller's fault; an unavailable signal means a
// backing store is down and the request is safe to retry.
func moderationErrorResponse(logger *logrus.Logger, c *fiber.Ctx, err error) error {
	switch {
	case domain.IsInvalidInput(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case domain.IsSignalUnavailable(err):
		logger.WithError(err).Error("Moderation signal unavailable")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "moderation temporarily unavailable"})
	default:
		logger.WithError(err).Error("Failed to moderate content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to moderate content"})
	}
}

// topSignal labels a verdict with its highest-severity issue type.
// Issues arrive severity-sorted from the decision engine.
func topSignal(result *moderation.Result) string {
	if len(result.Issues) == 0 {
		return "none"
	}
	return string(result.Issues[0].Type)
}

func issueTypes(result *moderation.Result) []string {
	if len(result.Issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		out = append(out, string(issue.Type))
	}
	return out
}
