package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/common"
	"github.com/VettaLabs/ThesisGate/pkg/config"
	handlers "github.com/VettaLabs/ThesisGate/pkg/handlers/http"
	"github.com/VettaLabs/ThesisGate/pkg/infra/jwt"
	"github.com/VettaLabs/ThesisGate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	marker string
}

func (h *stubHandler) Handle(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"handler": h.marker})
}

func routedServer(t *testing.T) (*GateServer, jwt.Manager) {
	t.Helper()

	logger := logrus.New()
	cfg := &config.Config{}
	jwtManager := jwt.NewJwtManager(&config.AuthConfig{JwtSecret: "route-test-secret"})

	srv := NewGateServer(GateServerDI{
		MiddlewareTransport: middleware.Transport{
			RequestIDMiddleware:    middleware.NewRequestIDMiddleware(logger),
			MetricsMiddleware:      middleware.NewMetricsMiddleware(logger),
			PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
			AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, jwtManager),
		},
		HandlerTransport: handlers.HandlerTransport{
			ModerationHandler:   &stubHandler{marker: "moderation"},
			AnalysisHandler:     &stubHandler{marker: "analysis"},
			CreateReviewHandler: &stubHandler{marker: "create_review"},
			ListReviewsHandler:  &stubHandler{marker: "list_reviews"},
			HealthHandler:       &stubHandler{marker: "health"},
			WarmupHandler:       &stubHandler{marker: "warmup"},
			VersionHandler:      &stubHandler{marker: "version"},
		},
		Config: cfg,
		Logger: logger,
	})
	srv.setupRoutes()
	return srv, jwtManager
}

func handlerMarker(t *testing.T, resp *http.Response) string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out["handler"]
}

func TestGateServer_Routes(t *testing.T) {
	t.Run("Routes The Pipeline Endpoints", func(t *testing.T) {
		srv, _ := routedServer(t)

		cases := []struct {
			method string
			path   string
			want   string
		}{
			{"POST", "/api/v1/moderation", "moderation"},
			{"POST", "/api/v1/analysis", "analysis"},
			{"POST", "/api/v1/warmup", "warmup"},
			{"POST", "/api/v1/reviews", "create_review"},
			{"GET", "/api/v1/version", "version"},
			{"GET", "/health", "health"},
			{"GET", "/", "version"},
		}

		for _, tc := range cases {
			resp, err := srv.Router.Test(httptest.NewRequest(tc.method, tc.path, nil), -1)
			require.NoError(t, err, tc.path)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, tc.path)
			assert.Equal(t, tc.want, handlerMarker(t, resp), tc.path)
		}
	})

	t.Run("Protects The Review Queue", func(t *testing.T) {
		srv, jwtManager := routedServer(t)

		resp, err := srv.Router.Test(httptest.NewRequest("GET", "/api/v1/reviews", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		token, err := jwtManager.CreateToken()
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/v1/reviews", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err = srv.Router.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "list_reviews", handlerMarker(t, resp))
	})

	t.Run("Tags Responses With A Request Id", func(t *testing.T) {
		srv, _ := routedServer(t)

		resp, err := srv.Router.Test(httptest.NewRequest("GET", "/health", nil), -1)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(common.RequestIDHeader))
	})
}
