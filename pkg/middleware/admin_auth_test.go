package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VettaLabs/ThesisGate/pkg/config"
	"github.com/VettaLabs/ThesisGate/pkg/infra/jwt"
	"github.com/VettaLabs/ThesisGate/pkg/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminProtectedApp(secret string) *fiber.App {
	manager := jwt.NewJwtManager(&config.AuthConfig{JwtSecret: secret})
	mw := middleware.NewAdminAuthMiddleware(logrus.New(), manager)

	app := fiber.New()
	app.Use(mw.Middleware())
	app.Get("/reviews", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	return app
}

func TestAdminAuthMiddleware(t *testing.T) {
	t.Run("Allows A Valid Token", func(t *testing.T) {
		manager := jwt.NewJwtManager(&config.AuthConfig{JwtSecret: "s3cret"})
		token, err := manager.CreateToken()
		require.NoError(t, err)

		app := adminProtectedApp("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Rejects A Missing Header", func(t *testing.T) {
		app := adminProtectedApp("s3cret")
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/reviews", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Rejects A Non Bearer Header", func(t *testing.T) {
		app := adminProtectedApp("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Rejects A Token Signed With Another Secret", func(t *testing.T) {
		other := jwt.NewJwtManager(&config.AuthConfig{JwtSecret: "other-secret"})
		token, err := other.CreateToken()
		require.NoError(t, err)

		app := adminProtectedApp("s3cret")
		req := httptest.NewRequest(http.MethodGet, "/reviews", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
