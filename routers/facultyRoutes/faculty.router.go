package facultyRoutes

import (
	facultyControllers "deptportal/controllers/faculty"
	mentorshipControllers "deptportal/controllers/mentorship"
	"deptportal/middleware"
	attendanceValidators "deptportal/validators/attendance"
	marksValidators "deptportal/validators/marks"

	"github.com/gofiber/fiber/v2"
)

func SetupFacultyRoutes(app *fiber.App) {
	facultyGroup := app.Group("/api/faculty", middleware.JWTMiddleware, middleware.RequireRole("faculty", "admin"))

	facultyGroup.Post("/attendance/bulk", attendanceValidators.BulkMark(), facultyControllers.BulkMarkAttendance)
	facultyGroup.Get("/attendance/subject/:subjectId", facultyControllers.ListAttendance)
	facultyGroup.Get("/attendance/student/:studentId/summary", facultyControllers.StudentAttendanceSummary)

	facultyGroup.Post("/marks/bulk", marksValidators.BulkEnter(), facultyControllers.BulkEnterMarks)
	facultyGroup.Get("/marks/subject/:subjectId", facultyControllers.ListSubjectMarks)
	facultyGroup.Get("/marks/student/:studentId", facultyControllers.StudentMarks)

	facultyGroup.Get("/mentees", mentorshipControllers.ListMentees)
}
