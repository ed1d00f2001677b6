package http

import (
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

func listReviewsApp(repo *reviewMocks.MockRepository) *fiber.App {
	handler := NewListReviewsHandler(logrus.New(), repo)
	app := fiber.New()
	app.Get("/api/v1/reviews", handler.Handle)
	return app
}

func TestListReviewsHandler_Handle(t *testing.T) {
	t.Run("Lists Queued Reviews", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		queued := []review.Review{
			{ID: uuid.New(), Reason: "false positive", Status: review.StatusQueued},
			{ID: uuid.New(), Reason: "appeal", Status: review.StatusQueued},
		}
		repo.On("ListByStatus", mock.Anything, review.StatusQueued, 50).Return(queued, nil)

		app := listReviewsApp(repo)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reviews", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var out struct {
			Reviews []review.Review `json:"reviews"`
			Count   int             `json:"count"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 2, out.Count)
		require.Len(t, out.Reviews, 2)
		assert.Equal(t, queued[0].ID, out.Reviews[0].ID)
	})

	t.Run("Caps The Requested Limit", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		repo.On("ListByStatus", mock.Anything, review.StatusQueued, 200).Return([]review.Review{}, nil)

		app := listReviewsApp(repo)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reviews?limit=5000", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		repo.AssertCalled(t, "ListByStatus", mock.Anything, review.StatusQueued, 200)
	})

	t.Run("Filters By Status", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		repo.On("ListByStatus", mock.Anything, review.StatusResolved, 50).Return([]review.Review{}, nil)

		app := listReviewsApp(repo)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reviews?status=resolved", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Repository Failure Maps To 500", func(t *testing.T) {
		repo := new(reviewMocks.MockRepository)
		repo.On("ListByStatus", mock.Anything, review.StatusQueued, 50).Return(nil, assert.AnError)

		app := listReviewsApp(repo)
		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/reviews", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	})
}
