package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole returns a middleware that allows only the listed roles through.
// It must run after JWTMiddleware, which sets the role claim in Locals.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: role not found", nil)
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
	}
}
