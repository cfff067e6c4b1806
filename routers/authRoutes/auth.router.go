package authRoutes

import (
	authControllers "deptportal/controllers/auth"
	"deptportal/middleware"
	authValidators "deptportal/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App) {
	authGroup := app.Group("/api/auth")

	authGroup.Post("/login", authValidators.Login(), authControllers.Login)
	authGroup.Put("/change-password", middleware.JWTMiddleware, authValidators.ChangePassword(), authControllers.ChangePassword)
	authGroup.Get("/login/history", middleware.JWTMiddleware, authControllers.LoginHistoryList)
}
