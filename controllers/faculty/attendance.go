package facultyController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// attendanceConflictTarget is the natural key of an attendance slot. A
// re-mark of the same slot updates the mutable fields instead of duplicating;
// a soft-deleted row still occupies the key, so the update clears is_deleted
// to bring the slot back into the listings.
var attendanceConflictTarget = []clause.Column{
	{Name: "student_id"}, {Name: "subject_id"}, {Name: "date"}, {Name: "period"},
}

// BulkMarkAttendance applies a whole class period's attendance as a single
// transaction: either every record's upsert commits or none do. The response
// returns the post-upsert rows in input order.
func BulkMarkAttendance(c *fiber.Ctx) error {
	facultyID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBulkAttendance").(*models.BulkAttendanceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Subject must exist before anything is written.
	var subject models.Subject
	if err := db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	date, err := time.Parse("2006-01-02", reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format, expected YYYY-MM-DD!", nil)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	// An empty batch is a valid degenerate case: commit and return [].
	results := make([]models.Attendance, 0, len(reqData.Records))

	for _, rec := range reqData.Records {
		row := models.Attendance{
			StudentID:    rec.StudentID,
			SubjectID:    reqData.SubjectID,
			FacultyID:    facultyID,
			Date:         date,
			Period:       reqData.Period,
			Status:       rec.Status,
			AcademicYear: reqData.AcademicYear,
			Semester:     reqData.Semester,
			Remarks:      rec.Remarks,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   attendanceConflictTarget,
			DoUpdates: clause.AssignmentColumns([]string{"status", "remarks", "faculty_id", "is_deleted", "updated_at"}),
		}).Create(&row).Error; err != nil {
			tx.Rollback()
			log.Printf("Error upserting attendance for student %d: %v", rec.StudentID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attendance, no records were written!", nil)
		}

		// Re-read inside the transaction so the response reflects
		// post-upsert state, id included, in input order.
		var saved models.Attendance
		if err := tx.Where("student_id = ? AND subject_id = ? AND date = ? AND period = ?",
			rec.StudentID, reqData.SubjectID, date, reqData.Period).First(&saved).Error; err != nil {
			tx.Rollback()
			log.Printf("Error reading back attendance for student %d: %v", rec.StudentID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attendance, no records were written!", nil)
		}
		results = append(results, saved)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing attendance batch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save attendance, no records were written!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance saved successfully.", results)
}

// ListAttendance returns the records for a subject, date and optional period.
func ListAttendance(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("subjectId")
	if err != nil || subjectID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date, expected YYYY-MM-DD!", nil)
	}

	query := database.Database.Db.
		Where("subject_id = ? AND date = ? AND is_deleted = ?", subjectID, date, false)

	if period := c.QueryInt("period"); period > 0 {
		query = query.Where("period = ?", period)
	}

	var records []models.Attendance
	if err := query.Order("student_id").Find(&records).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attendance!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance list.", records)
}

// StudentAttendanceSummary aggregates a student's per-subject counts and
// overall percentage. Present and late both count as attended.
func StudentAttendanceSummary(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	db := database.Database.Db

	var student models.Student
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	type subjectSummary struct {
		SubjectID uint    `json:"subject_id"`
		Present   int64   `json:"present"`
		Absent    int64   `json:"absent"`
		Late      int64   `json:"late"`
		OnLeave   int64   `json:"on_leave"`
		Total     int64   `json:"total"`
		Percent   float64 `json:"percent"`
	}

	var subjectIDs []uint
	db.Model(&models.Attendance{}).
		Where("student_id = ? AND is_deleted = ?", studentID, false).
		Distinct().Pluck("subject_id", &subjectIDs)

	summaries := make([]subjectSummary, 0, len(subjectIDs))
	var overallTotal, overallAttended int64

	for _, sid := range subjectIDs {
		s := subjectSummary{SubjectID: sid}
		base := db.Model(&models.Attendance{}).
			Where("student_id = ? AND subject_id = ? AND is_deleted = ?", studentID, sid, false)

		base.Session(&gorm.Session{}).Count(&s.Total)
		base.Session(&gorm.Session{}).Where("status = ?", models.AttendancePresent).Count(&s.Present)
		base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceAbsent).Count(&s.Absent)
		base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceLate).Count(&s.Late)
		base.Session(&gorm.Session{}).Where("status = ?", models.AttendanceOnLeave).Count(&s.OnLeave)

		if s.Total > 0 {
			s.Percent = float64(s.Present+s.Late) / float64(s.Total) * 100
		}

		overallTotal += s.Total
		overallAttended += s.Present + s.Late
		summaries = append(summaries, s)
	}

	overallPercent := 0.0
	if overallTotal > 0 {
		overallPercent = float64(overallAttended) / float64(overallTotal) * 100
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance summary.", fiber.Map{
		"student_id":      student.ID,
		"roll_number":     student.RollNumber,
		"subjects":        summaries,
		"overall_percent": overallPercent,
	})
}

// DeleteAttendance soft-deletes a single record. Admin only.
func DeleteAttendance(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attendance id!", nil)
	}

	res := database.Database.Db.Model(&models.Attendance{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)

	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete attendance!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attendance record not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attendance record deleted.", nil)
}
