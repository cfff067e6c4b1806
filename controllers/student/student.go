package studentController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"

	"github.com/gofiber/fiber/v2"
)

// MyAttendance returns the calling student's per-subject attendance counts.
func MyAttendance(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	type subjectRow struct {
		SubjectID   uint    `json:"subject_id"`
		SubjectName string  `json:"subject_name"`
		Attended    int64   `json:"attended"`
		Total       int64   `json:"total"`
		Percent     float64 `json:"percent"`
	}

	var subjectIDs []uint
	db.Model(&models.Attendance{}).
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Distinct().Pluck("subject_id", &subjectIDs)

	rows := make([]subjectRow, 0, len(subjectIDs))
	var overallTotal, overallAttended int64

	for _, sid := range subjectIDs {
		r := subjectRow{SubjectID: sid}

		var subject models.Subject
		if err := db.Select("name").First(&subject, sid).Error; err == nil {
			r.SubjectName = subject.Name
		}

		db.Model(&models.Attendance{}).
			Where("student_id = ? AND subject_id = ? AND is_deleted = ?", studentID, sid, false).
			Count(&r.Total)
		db.Model(&models.Attendance{}).
			Where("student_id = ? AND subject_id = ? AND is_deleted = ? AND status IN ?",
				studentID, sid, false,
				[]models.AttendanceStatus{models.AttendancePresent, models.AttendanceLate}).
			Count(&r.Attended)

		if r.Total > 0 {
			r.Percent = float64(r.Attended) / float64(r.Total) * 100
		}

		overallTotal += r.Total
		overallAttended += r.Attended
		rows = append(rows, r)
	}

	overallPercent := 0.0
	if overallTotal > 0 {
		overallPercent = float64(overallAttended) / float64(overallTotal) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My attendance.", fiber.Map{
		"subjects":        rows,
		"overall_percent": overallPercent,
	})
}

// MyMarks returns the calling student's marks with derived fields.
func MyMarks(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	query := database.Database.Db.Where("student_id = ? AND is_deleted = ?", studentID, false)
	if semester := c.QueryInt("semester"); semester > 0 {
		query = query.Where("semester = ?", semester)
	}

	var rows []models.Marks
	if err := query.Order("subject_id, exam_type").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch marks!", nil)
	}

	type marksView struct {
		models.Marks
		Percentage float64 `json:"percentage"`
		Grade      string  `json:"grade"`
	}

	views := make([]marksView, 0, len(rows))
	for _, m := range rows {
		views = append(views, marksView{Marks: m, Percentage: m.Percentage(), Grade: m.Grade()})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "My marks.", views)
}
