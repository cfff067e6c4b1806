package authValidator

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

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
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
		if len(strings.TrimSpace(reqData.Password)) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLogin", reqData)
		return c.Next()
	}
}

// ChangePassword validator middleware
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.CurrentPassword)) == 0 {
			errors["currentPassword"] = "Current password is required!"
		}
		if len(strings.TrimSpace(reqData.NewPassword)) < 6 {
			errors["newPassword"] = "Password must be at least 6 characters long!"
		}
		if reqData.CurrentPassword == reqData.NewPassword && reqData.NewPassword != "" {
			errors["newPassword"] = "New password must differ from the current one!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedChangePassword", reqData)
		return c.Next()
	}
}
