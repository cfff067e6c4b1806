package passwordResetValidator

import (
	"deptportal/middleware"
	"deptportal/models"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// RequestReset validator middleware
func RequestReset() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if !models.Role(reqData.Role).Valid() {
			errors["role"] = "Role must be admin, faculty or student!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReset", reqData)
		return c.Next()
	}
}

// VerifyOTP validator middleware
func VerifyOTP() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email string `json:"email"`
			OTP   string `json:"otp"`
			Role  string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if !models.Role(reqData.Role).Valid() {
			errors["role"] = "Role must be admin, faculty or student!"
		}
		if len(reqData.OTP) != 6 {
			errors["otp"] = "OTP must be 6 digits!"
		} else if ok, _ := regexp.MatchString(`^\d{6}$`, reqData.OTP); !ok {
			errors["otp"] = "OTP must be numeric!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVerify", reqData)
		return c.Next()
	}
}

// ResetPassword validator middleware
func ResetPassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email       string `json:"email"`
			ResetToken  string `json:"resetToken"`
			NewPassword string `json:"newPassword"`
			Role        string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if !models.Role(reqData.Role).Valid() {
			errors["role"] = "Role must be admin, faculty or student!"
		}
		if reqData.ResetToken == "" {
			errors["resetToken"] = "Reset token is required!"
		}
		if len(strings.TrimSpace(reqData.NewPassword)) < 6 {
			errors["newPassword"] = "Password must be at least 6 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedResetPassword", reqData)
		return c.Next()
	}
}
