package authRoutes

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePasswordRejectsUnauthenticatedBeforeValidation(t *testing.T) {
	app := fiber.New()
	SetupAuthRoutes(app)

	// The body would fail validation, but an unauthenticated caller must be
	// turned away before the body is even parsed.
	req := httptest.NewRequest("PUT", "/api/auth/change-password",
		strings.NewReader(`{"currentPassword":"","newPassword":"123"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
