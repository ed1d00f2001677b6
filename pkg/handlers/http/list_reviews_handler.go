package http

import (
	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const (
	defaultReviewListLimit = 50
	maxReviewListLimit     = 200
)

type listReviewsHandler struct {
	logger     *logrus.Logger
	reviewRepo review.Repository
}

func NewListReviewsHandler(logger *logrus.Logger, reviewRepo review.Repository) Handler {
	return &listReviewsHandler{
		logger:     logger,
		reviewRepo: reviewRepo,
	}
}

// Handle lists queued reviews for the moderation team. Sits behind the
// admin auth middleware; never exposed without a token.
func (h *listReviewsHandler) Handle(c *fiber.Ctx) error {
	status := review.Status(c.Query("status", string(review.StatusQueued)))

	limit := c.QueryInt("limit", defaultReviewListLimit)
	if limit <= 0 {
		limit = defaultReviewListLimit
	}
	if limit > maxReviewListLimit {
		limit = maxReviewListLimit
	}

	reviews, err := h.reviewRepo.ListByStatus(c.Context(), status, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list reviews")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list reviews"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
