package http

import (
	"fmt"

	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	"github.com/VettaLabs/ThesisGate/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type createReviewHandler struct {
	logger     *logrus.Logger
	reviewRepo review.Repository
}

func NewCreateReviewHandler(logger *logrus.Logger, reviewRepo review.Repository) Handler {
	return &createReviewHandler{
		logger:     logger,
		reviewRepo: reviewRepo,
	}
}

// Handle queues a submission for human review. The stored record is the
// only place submitted text is ever persisted.
func (h *createReviewHandler) Handle(c *fiber.Ctx) error {
	var req request.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entity := &review.Review{
		ID:           uuid.New(),
		Text:         req.Text,
		Reason:       req.Reason,
		ContactEmail: req.ContactEmail,
		Status:       review.StatusQueued,
	}

	if err := h.reviewRepo.Save(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("Failed to save review")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to save review"})
	}

	h.logger.WithField("review_id", entity.ID).Info("manual review queued")

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"review_id": entity.ID,
		"status":    entity.Status,
		"message":   fmt.Sprintf("Your request has been submitted (ID: %s). We'll review within 24 hours.", entity.ID),
	})
}
