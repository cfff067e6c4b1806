package studentRoutes

import (
	mentorshipControllers "deptportal/controllers/mentorship"
	studentControllers "deptportal/controllers/student"
	"deptportal/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/api/student", middleware.JWTMiddleware, middleware.RequireRole("student"))

	studentGroup.Get("/attendance", studentControllers.MyAttendance)
	studentGroup.Get("/marks", studentControllers.MyMarks)
	studentGroup.Get("/mentor", mentorshipControllers.MyMentor)
}
