package attendanceValidator

import (
	"deptportal/middleware"
	"deptportal/models"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// BulkMark validates a bulk attendance payload.
func BulkMark() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.BulkAttendanceRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SubjectID < 1 {
			errors["subject_id"] = "Subject id is required!"
		}
		if _, err := time.Parse("2006-01-02", reqData.Date); err != nil {
			errors["date"] = "Date must be in YYYY-MM-DD format!"
		}
		if reqData.Period < 1 || reqData.Period > 10 {
			errors["period"] = "Period must be between 1 and 10!"
		}
		if reqData.AcademicYear == "" {
			errors["academic_year"] = "Academic year is required!"
		}
		if reqData.Semester < 1 || reqData.Semester > 8 {
			errors["semester"] = "Semester must be between 1 and 8!"
		}

		seen := make(map[uint]bool)
		for i, rec := range reqData.Records {
			if rec.StudentID < 1 {
				errors[fmt.Sprintf("attendance_records[%d].student_id", i)] = "Student id is required!"
			}
			if !rec.Status.Valid() {
				errors[fmt.Sprintf("attendance_records[%d].status", i)] = "Status must be present, absent, late or on_leave!"
			}
			if seen[rec.StudentID] {
				errors[fmt.Sprintf("attendance_records[%d].student_id", i)] = "Duplicate student in batch!"
			}
			seen[rec.StudentID] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkAttendance", reqData)
		return c.Next()
	}
}
