package http

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/domain/review"
	reviewMocks "github.com/VettaLabs/ThesisGate/pkg/domain/review/mocks"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createReviewApp(repo *reviewMocks.MockRepository) *fiber.App {
	handler := NewCreateReviewHandler(logrus.New(), repo)
	app := fiber.New()
	app.Post("/api/v1/reviews", handler.Handle)
	return app
}

func TestCreateReviewHandler_Handle(t *testing.T) {
	t.Run("Queues A Review", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		var saved *review.Review
		repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*review.Review)
		}).Return(nil)

		app := createReviewApp(repo)
		body, err := json.Marshal(fiber.Map{
			"text":          "My thesis about Infosys was flagged but it is a plain valuation argument.",
			"reason":        "false positive",
			"contact_email": "trader@example.com",
		})
		require.NoError(t, err)

		req := httptest.NewRequest("POST", "/api/v1/reviews", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var out struct {
			ReviewID string `json:"review_id"`
			Status   string `json:"status"`
			Message  string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

		id, err := uuid.Parse(out.ReviewID)
		require.NoError(t, err)
		assert.Equal(t, "queued", out.Status)
		assert.Contains(t, out.Message, id.String())

		require.NotNil(t, saved)
		assert.Equal(t, id, saved.ID)
		assert.Equal(t, review.StatusQueued, saved.Status)
		assert.Equal(t, "trader@example.com", saved.ContactEmail)
	})

	t.Run("Rejects An Invalid Email", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		app := createReviewApp(repo)

		body := `{"text":"flagged content","reason":"appeal","contact_email":"not-an-email"}`
		req := httptest.NewRequest("POST", "/api/v1/reviews", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Contains(t, out["error"], "contact_email")

		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("Requires Text And Reason", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		app := createReviewApp(repo)

		for name, body := range map[string]string{
			"missing text":   `{"reason":"appeal","contact_email":"a@b.com"}`,
			"missing reason": `{"text":"flagged content","contact_email":"a@b.com"}`,
		} {
			req := httptest.NewRequest("POST", "/api/v1/reviews", bytes.NewReader([]byte(body)))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req, -1)
			require.NoError(t, err, name)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, name)
		}
	})

	t.Run("Rejects Malformed JSON", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		app := createReviewApp(repo)

		req := httptest.NewRequest("POST", "/api/v1/reviews", bytes.NewReader([]byte(`{"text":`)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Repository Failure Maps To 500", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		repo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		app := createReviewApp(repo)
		body := `{"text":"flagged content","reason":"appeal","contact_email":"a@b.com"}`
		req := httptest.NewRequest("POST", "/api/v1/reviews", bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
