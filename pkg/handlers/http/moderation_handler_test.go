package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain"
	"github.com/VettaLabs/ThesisGate/pkg/domain/moderation"
	"github.com/VettaLabs/ThesisGate/pkg/engine"
	"github.com/VettaLabs/ThesisGate/pkg/handlers/http/mocks"
	infraAudit "github.com/VettaLabs/ThesisGate/pkg/infra/audit"
	strikeMocks "github.com/VettaLabs/ThesisGate/pkg/infra/strikes/mocks"
	"github.com/VettaLabs/ThesisGate/pkg/report"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func moderationTestApp(moderator *mocks.MockModerator, tracker *strikeMocks.MockTracker) *fiber.App {
	logger := logrus.New()
	handler := NewModerationHandler(
		logger,
		moderator,
		report.NewAssembler(),
		tracker,
		infraAudit.NewService(nil, logger, false),
	)
	app := fiber.New()
	app.Post("/api/v1/moderation", handler.Handle)
	return app
}

func blockedModeration() *engine.Moderation {
	return &engine.Moderation{
		Result: moderation.Result{
			Decision:         moderation.DecisionBlock,
			RiskScore:        0.85,
			IsFinanceRelated: true,
			Issues: []moderation.Issue{{
				Type:     moderation.IssueScam,
				Category: "guaranteed_returns",
				Found:    "guaranteed returns",
				Severity: 0.85,
			}},
			Explanation: "Content blocked due to detected scam patterns.",
			CanProceed:  false,
		},
	}
}

func passingModeration() *engine.Moderation {
	return &engine.Moderation{
		Result: moderation.Result{
			Decision:         moderation.DecisionPass,
			RiskScore:        0.05,
			IsFinanceRelated: true,
			Issues:           []moderation.Issue{},
			Explanation:      "Content passed all moderation checks.",
			CanProceed:       true,
		},
	}
}

func TestModerationHandler_Handle(t *testing.T) {
	t.Run("Blocks A Scam Submission And Records A Strike", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)
		text := "Guaranteed returns! Send me $500 and double your money."

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, nil)
		tracker.On("Record", mock.Anything, mock.Anything).Return(int64(1), nil)
		moderator.On("Moderate", mock.Anything, text).Return(blockedModeration(), nil)

		app := moderationTestApp(moderator, tracker)
		body, err := json.Marshal(fiber.Map{"text": text})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out report.ModerationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "BLOCK", out.Decision)
		assert.False(t, out.CanProceed)
		assert.InDelta(t, 0.85, out.RiskScore, 0.0001)
		require.Len(t, out.Issues, 1)
		assert.NotEmpty(t, out.Issues[0].Suggestion)

		tracker.AssertCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("Passes Clean Content Without A Strike", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)
		text := "Infosys grew revenue 12% and trades at a reasonable valuation."

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, nil)
		moderator.On("Moderate", mock.Anything, text).Return(passingModeration(), nil)

		app := moderationTestApp(moderator, tracker)
		body, err := json.Marshal(fiber.Map{"text": text})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out report.ModerationResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "PASS", out.Decision)
		assert.True(t, out.CanProceed)
		assert.Empty(t, out.Issues)

		tracker.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	})

	t.Run("Throttles A Repeat Offender", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(true, nil)

		app := moderationTestApp(moderator, tracker)
		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader([]byte(`{"text":"anything"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

		moderator.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
	})

	t.Run("Strike Lookup Failure Does Not Block Moderation", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)
		text := "Infosys grew revenue 12% and trades at a reasonable valuation."

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, assert.AnError)
		moderator.On("Moderate", mock.Anything, text).Return(passingModeration(), nil)

		app := moderationTestApp(moderator, tracker)
		body, err := json.Marshal(fiber.Map{"text": text})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)
		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, nil)

		app := moderationTestApp(moderator, tracker)
		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader([]byte(`{"text":`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		moderator.AssertNotCalled(t, "Moderate", mock.Anything, mock.Anything)
	})

	t.Run("Short Content Maps To 400", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, nil)
		moderator.On("Moderate", mock.Anything, "too short").
			Return(nil, domain.NewInvalidInputError("content too short"))

		app := moderationTestApp(moderator, tracker)
		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader([]byte(`{"text":"too short"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out["error"], "content too short")
	})

	t.Run("Unavailable Signal Maps To 503", func(t *testing.T) {
		moderator := new(mocks.MockModerator)
		tracker := new(strikeMocks.MockTracker)

		tracker.On("Throttled", mock.Anything, mock.Anything).Return(false, nil)
		moderator.On("Moderate", mock.Anything, mock.Anything).
			Return(nil, domain.NewSignalUnavailableError("semantic", "redis connection refused"))

		app := moderationTestApp(moderator, tracker)
		req := httptest.NewRequest("POST", "/api/v1/moderation", bytes.NewReader([]byte(`{"text":"a perfectly ordinary thesis"}`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}
