package publicRoutes

import (
	adminControllers "deptportal/controllers/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupPublicRoutes exposes the informational listings without auth.
func SetupPublicRoutes(app *fiber.App) {
	publicGroup := app.Group("/api/public")

	publicGroup.Get("/news", adminControllers.ListNews)
	publicGroup.Get("/events", adminControllers.ListEvents)
	publicGroup.Get("/achievements", adminControllers.ListAchievements)
}
