package passwordResetValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func passthrough(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func TestRequestResetValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/reset", RequestReset(), passthrough)

	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/reset",
		`{"email":"a@x.edu","role":"student"}`))

	// Bad email
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/reset",
		`{"email":"not-an-email","role":"student"}`))

	// Unknown role
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/reset",
		`{"email":"a@x.edu","role":"registrar"}`))

	// Missing fields
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/reset", `{}`))
}

func TestVerifyOTPValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/verify", VerifyOTP(), passthrough)

	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/verify",
		`{"email":"a@x.edu","otp":"123456","role":"faculty"}`))

	// Wrong length
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/verify",
		`{"email":"a@x.edu","otp":"12345","role":"faculty"}`))

	// Non-numeric code
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/verify",
		`{"email":"a@x.edu","otp":"12a456","role":"faculty"}`))
}

func TestResetPasswordValidator(t *testing.T) {
	app := fiber.New()
	app.Post("/password", ResetPassword(), passthrough)

	assert.Equal(t, fiber.StatusOK, postJSON(t, app, "/password",
		`{"email":"a@x.edu","resetToken":"tok","newPassword":"secret1","role":"admin"}`))

	// Password below the 6-character minimum
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/password",
		`{"email":"a@x.edu","resetToken":"tok","newPassword":"12345","role":"admin"}`))

	// Missing token
	assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, "/password",
		`{"email":"a@x.edu","newPassword":"secret1","role":"admin"}`))
}
