package http

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/VettaLabs/ThesisGate/pkg/domain/audit"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	infraAudit "github.com/VettaLabs/ThesisGate/pkg/infra/audit"
	"github.com/VettaLabs/ThesisGate/pkg/infra/httpx"
	"github.com/VettaLabs/ThesisGate/pkg/infra/prometheus"
	"github.com/VettaLabs/ThesisGate/pkg/report"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// minAnalysisLength is the shortest document worth grading. Phase two
// needs enough sentences for the dimension heuristics to mean anything.
const minAnalysisLength = 50

var analysisExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// compressionExtensions maps upload suffixes to their Content-Encoding
// token. Brotli has no magic bytes, so the suffix is the only hint when
// the client does not declare the encoding.
var compressionExtensions = map[string]string{
	".gz":  "gzip",
	".br":  "br",
	".zst": "zstd",
}

type analysisHandler struct {
	logger    *logrus.Logger
	moderator Moderator
	scorer    Scorer
	assembler *report.Assembler
	audit     infraAudit.Service
}

func NewAnalysisHandler(
	logger *logrus.Logger,
	moderator Moderator,
	scorer Scorer,
	assembler *report.Assembler,
	auditService infraAudit.Service,
) Handler {
	return &analysisHandler{
		logger:    logger,
		moderator: moderator,
		scorer:    scorer,
		assembler: assembler,
		audit:     auditService,
	}
}

// Handle grades an uploaded thesis document. Phase one runs first and a
// verdict other than pass stops the request with the moderation report;
// only passing content reaches the scorer.
func (h *analysisHandler) Handle(c *fiber.Ctx) error {
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}

	name := strings.ToLower(fileHeader.Filename)
	ext := filepath.Ext(name)
	encodingHint := ""
	if enc, ok := compressionExtensions[ext]; ok {
		encodingHint = enc
		ext = filepath.Ext(strings.TrimSuffix(name, ext))
	}
	if !analysisExtensions[ext] {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "only .txt and .md files are accepted"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.WithError(err).Error("Failed to open uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.logger.WithError(err).Error("Failed to read uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to read uploaded file"})
	}

	encoding := fileHeader.Header.Get(fiber.HeaderContentEncoding)
	if encoding == "" {
		encoding = httpx.SniffEncoding(raw)
	}
	if encoding == "" {
		encoding = encodingHint
	}

	decoded, _, err := httpx.DecodeChain(encoding, raw)
	if err != nil {
		h.logger.WithError(err).WithField("encoding", encoding).Error("Failed to decode uploaded file")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "failed to decode compressed upload"})
	}

	if !utf8.Valid(decoded) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file must be UTF-8 text"})
	}

	text := string(decoded)
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minAnalysisLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("content too short for analysis (minimum %d characters)", minAnalysisLength),
		})
	}

	m, err := h.moderator.Moderate(c.Context(), text)
	if err != nil {
		return moderationErrorResponse(h.logger, c, err)
	}

	if m.Result.Decision != moderation.DecisionPass {
		return h.rejected(c, m.Result, text, start)
	}

	rep, err := h.scorer.Score(c.Context(), m.Document)
	if err != nil {
		h.logger.WithError(err).Error("Failed to score content")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to score content"})
	}

	resp, err := h.assembler.Strength(&m.Result, rep)
	if err != nil {
		h.logger.WithError(err).Error("Failed to assemble strength report")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to assemble response"})
	}

	elapsed := time.Since(start)
	prometheus.AnalysisGradeTotal.WithLabelValues(string(rep.Grade)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.ModerationPhaseLatency.WithLabelValues("analysis").Observe(float64(elapsed.Milliseconds()))
	}

	score := rep.OverallScore
	h.audit.Emit(c, audit.Event{
		Kind:             audit.KindAnalysis,
		Decision:         m.Result.Decision,
		RiskScore:        m.Result.RiskScore,
		IsFinanceRelated: m.Result.IsFinanceRelated,
		OverallScore:     &score,
		Grade:            string(rep.Grade),
		LatencyMs:        elapsed.Milliseconds(),
	})

	return c.Status(fiber.StatusOK).JSON(resp)
}

// rejected renders the phase-one report for content that did not pass.
// The body matches the moderation endpoint so clients reuse one decoder.
func (h *analysisHandler) rejected(c *fiber.Ctx, result moderation.Result, text string, start time.Time) error {
	resp, err := h.assembler.Moderation(&result, text)
	if err != nil {
		h.logger.WithError(err).Error("Failed to assemble moderation response")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to assemble response"})
	}

	elapsed := time.Since(start)
	prometheus.ModerationDecisionTotal.WithLabelValues(resp.Decision, topSignal(&result)).Inc()
	if prometheus.Config.EnableLatency {
		prometheus.ModerationPhaseLatency.WithLabelValues("analysis").Observe(float64(elapsed.Milliseconds()))
	}

	h.audit.Emit(c, audit.Event{
		Kind:             audit.KindAnalysis,
		Decision:         result.Decision,
		RiskScore:        result.RiskScore,
		IsFinanceRelated: result.IsFinanceRelated,
		TopSignal:        topSignal(&result),
		IssueTypes:       issueTypes(&result),
		LatencyMs:        elapsed.Milliseconds(),
	})

	return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
}
