package passwordResetRoutes

import (
	passwordResetControllers "deptportal/controllers/passwordReset"
	passwordResetValidators "deptportal/validators/passwordReset"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupPasswordResetRoutes(app *fiber.App) {
	resetGroup := app.Group("/api/password-reset")

	// Per-IP rate limit across the reset flow; OTP brute force is further
	// capped by the store's attempt counter.
	resetGroup.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests. Please try again later.",
				"data":    nil,
			})
		},
	}))

	resetGroup.Post("/request-reset", passwordResetValidators.RequestReset(), passwordResetControllers.RequestReset)
	resetGroup.Post("/verify-otp", passwordResetValidators.VerifyOTP(), passwordResetControllers.VerifyOTP)
	resetGroup.Post("/reset-password", passwordResetValidators.ResetPassword(), passwordResetControllers.ResetPassword)
}
