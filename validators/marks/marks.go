package marksValidator

import (
	"deptportal/middleware"
	"deptportal/models"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// BulkEnter validates a bulk marks payload. Bounds checking of each record
// against max marks happens in the controller's pre-write validation; this
// middleware only rejects structurally invalid requests.
func BulkEnter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(models.BulkMarksRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.SubjectID < 1 {
			errors["subject_id"] = "Subject id is required!"
		}
		if !reqData.ExamType.Valid() {
			errors["exam_type"] = "Invalid exam type!"
		}
		if reqData.MaxMarks <= 0 {
			errors["max_marks"] = "Max marks must be greater than zero!"
		}
		if reqData.AcademicYear == "" {
			errors["academic_year"] = "Academic year is required!"
		}
		if reqData.Semester < 1 || reqData.Semester > 8 {
			errors["semester"] = "Semester must be between 1 and 8!"
		}
		if reqData.ExamDate != "" {
			if _, err := time.Parse("2006-01-02", reqData.ExamDate); err != nil {
				errors["exam_date"] = "Exam date must be in YYYY-MM-DD format!"
			}
		}

		seen := make(map[uint]bool)
		for i, rec := range reqData.Records {
			if rec.StudentID < 1 {
				errors[fmt.Sprintf("marks_records[%d].student_id", i)] = "Student id is required!"
			}
			if seen[rec.StudentID] {
				errors[fmt.Sprintf("marks_records[%d].student_id", i)] = "Duplicate student in batch!"
			}
			seen[rec.StudentID] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkMarks", reqData)
		return c.Next()
	}
}
