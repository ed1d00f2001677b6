package http

import (
	"time"

	"github.com/VettaLabs/ThesisGate/pkg/domain/audit"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/handlers/http/request"
	infraAudit "github.com/VettaLabs/ThesisGate/pkg/infra/audit"
	"github.com/VettaLabs/ThesisGate/pkg/infra/prometheus"
	"github.com/VettaLabs/ThesisGate/pkg/infra/strikes"
	"github.com/VettaLabs/ThesisGate/pkg/report"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type moderationHandler struct {
	logger    *logrus.Logger
	moderator Moderator
	assembler *report.Assembler
	tracker   strikes.Tracker
	audit     infraAudit.Service
}

func NewModerationHandler(
	logger *logrus.Logger,
	moderator Moderator,
	assembler *report.Assembler,
	tracker strikes.Tracker,
	auditService infraAudit.Service,
) Handler {
	return &moderationHandler{
		logger:    logger,
		moderator: moderator,
		assembler: assembler,
		tracker:   tracker,
		audit:     auditService,
	}
}

// Handle runs phase one over a raw text submission. Every verdict is a
// 200; the decision lives in the body so clients branch on one field.
// Clients that keep submitting blocked content get throttled before the
// pipeline runs.
func (h *moderationHandler) Handle(c *fiber.Ctx) error {
	start := time.Now()

	fp := strikes.FromRequest(c)
	throttled, err := h.tracker.Throttled(c.Context(), fp)
	if err != nil {
		h.logger.WithError(err).Warn("strike lookup failed, skipping throttle check")
	}
	if throttled {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "too many blocked submissions, try again later",
		})
	}

	var req request.ModerationRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Error("Failed to bind request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	m, err := h.moderator.Moderate(c.Context(), req.Text)
	if err != nil {
		return moderationErrorResponse(h.logger, c, err)
	}

	if m.Result.Decision == moderation.DecisionBlock {
		if _, err := h.tracker.Record(c.Context(), fp); err != nil {
			h.logger.WithError(err).Warn("failed to record strike")
		}
	}

	resp, err := h.assembler.Moderation(&m.Result, req.Text)
	if err != nil {
		h.logger.WithError(err).Error("Failed to assemble moderation response")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to assemble response"})
	}

	elapsed := time.Since(start)
	prometheus.ModerationDecisionTotal.WithLabelValues(resp.Decision, topSignal(&m.Result)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.ModerationPhaseLatency.WithLabelValues("moderation").Observe(float64(elapsed.Milliseconds()))
	}

	h.audit.Emit(c, audit.Event{
		Kind:             audit.KindModeration,
		Decision:         m.Result.Decision,
		RiskScore:        m.Result.RiskScore,
		IsFinanceRelated: m.Result.IsFinanceRelated,
		TopSignal:        topSignal(&m.Result),
		IssueTypes:       issueTypes(&m.Result),
		LatencyMs:        elapsed.Milliseconds(),
	})

	return c.Status(fiber.StatusOK).JSON(resp)
}
