package adminRoutes

import (
	adminControllers "deptportal/controllers/admin"
	facultyControllers "deptportal/controllers/faculty"
	mentorshipControllers "deptportal/controllers/mentorship"
	"deptportal/middleware"
	adminValidators "deptportal/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.RequireRole("admin"))

	adminGroup.Get("/dashboard", adminControllers.Dashboard)

	adminGroup.Post("/faculty", adminValidators.CreateFaculty(), adminControllers.CreateFaculty)
	adminGroup.Get("/faculty", adminControllers.ListFaculty)
	adminGroup.Put("/faculty/:id", adminControllers.UpdateFaculty)
	adminGroup.Post("/students", adminValidators.CreateStudent(), adminControllers.CreateStudent)
	adminGroup.Get("/students", adminControllers.ListStudents)
	adminGroup.Put("/students/:id", adminControllers.UpdateStudent)
	adminGroup.Delete("/accounts/:role/:id", adminControllers.DeactivateAccount)

	adminGroup.Post("/subjects", adminValidators.CreateSubject(), adminControllers.CreateSubject)
	adminGroup.Get("/subjects", adminControllers.ListSubjects)

	adminGroup.Post("/mentorship", adminValidators.AssignMentor(), mentorshipControllers.AssignMentor)

	adminGroup.Post("/news", adminValidators.CreateNews(), adminControllers.CreateNews)
	adminGroup.Put("/news/:id", adminControllers.UpdateNews)
	adminGroup.Post("/events", adminValidators.CreateEvent(), adminControllers.CreateEvent)
	adminGroup.Post("/achievements", adminValidators.CreateAchievement(), adminControllers.CreateAchievement)
	adminGroup.Delete("/content/:kind/:id", adminControllers.DeleteNewsItem)

	adminGroup.Delete("/attendance/:id", facultyControllers.DeleteAttendance)
}
