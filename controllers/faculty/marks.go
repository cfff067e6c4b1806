package facultyController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// marksConflictTarget is the natural key of a marks entry. Resubmission for
// the same key overwrites the mutable fields.
var marksConflictTarget = []clause.Column{
	{Name: "student_id"}, {Name: "subject_id"}, {Name: "exam_type"},
	{Name: "academic_year"}, {Name: "semester"},
}

// marksView is a marks row with its derived fields attached.
type marksView struct {
	models.Marks
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

func withDerived(m models.Marks) marksView {
	return marksView{Marks: m, Percentage: m.Percentage(), Grade: m.Grade()}
}

// BulkEnterMarks applies a whole exam's marks as a single transaction.
// The batch is validated against max marks before the transaction opens;
// any offending record rejects the batch wholesale with the offenders listed.
func BulkEnterMarks(c *fiber.Ctx) error {
	facultyID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedBulkMarks").(*models.BulkMarksRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Pre-write validation: nothing is written if any record is out of bounds.
	if offenders := reqData.Offenders(); len(offenders) > 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Marks obtained cannot exceed max marks, no records were written!", fiber.Map{
				"offending_records": offenders,
			})
	}

	db := database.Database.Db

	var subject models.Subject
	if err := db.Where("id = ? AND is_deleted = ?", reqData.SubjectID, false).First(&subject).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Subject not found!", nil)
	}

	var examDate *time.Time
	if reqData.ExamDate != "" {
		d, err := time.Parse("2006-01-02", reqData.ExamDate)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam date, expected YYYY-MM-DD!", nil)
		}
		examDate = &d
	}

	tx := db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	results := make([]marksView, 0, len(reqData.Records))

	for _, rec := range reqData.Records {
		row := models.Marks{
			StudentID:     rec.StudentID,
			SubjectID:     reqData.SubjectID,
			ExamType:      reqData.ExamType,
			AcademicYear:  reqData.AcademicYear,
			Semester:      reqData.Semester,
			MarksObtained: rec.MarksObtained,
			MaxMarks:      reqData.MaxMarks,
			FacultyID:     facultyID,
			ExamDate:      examDate,
			Remarks:       rec.Remarks,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   marksConflictTarget,
			DoUpdates: clause.AssignmentColumns([]string{"marks_obtained", "max_marks", "remarks", "faculty_id", "exam_date", "is_deleted", "updated_at"}),
		}).Create(&row).Error; err != nil {
			tx.Rollback()
			log.Printf("Error upserting marks for student %d: %v", rec.StudentID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save marks, no records were written!", nil)
		}

		var saved models.Marks
		if err := tx.Where("student_id = ? AND subject_id = ? AND exam_type = ? AND academic_year = ? AND semester = ?",
			rec.StudentID, reqData.SubjectID, reqData.ExamType, reqData.AcademicYear, reqData.Semester).
			First(&saved).Error; err != nil {
			tx.Rollback()
			log.Printf("Error reading back marks for student %d: %v", rec.StudentID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save marks, no records were written!", nil)
		}
		results = append(results, withDerived(saved))
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing marks batch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save marks, no records were written!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Marks saved successfully.", results)
}

// ListSubjectMarks returns every entry for a subject and exam type.
func ListSubjectMarks(c *fiber.Ctx) error {
	subjectID, err := c.ParamsInt("subjectId")
	if err != nil || subjectID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid subject id!", nil)
	}

	query := database.Database.Db.Where("subject_id = ? AND is_deleted = ?", subjectID, false)

	if examType := c.Query("exam_type"); examType != "" {
		if !models.ExamType(examType).Valid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam type!", nil)
		}
		query = query.Where("exam_type = ?", examType)
	}

	var rows []models.Marks
	if err := query.Order("student_id").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch marks!", nil)
	}

	views := make([]marksView, 0, len(rows))
	for _, m := range rows {
		views = append(views, withDerived(m))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Marks list.", views)
}

// StudentMarks returns a student's entries with derived percentage and grade.
func StudentMarks(c *fiber.Ctx) error {
	studentID, err := c.ParamsInt("studentId")
	if err != nil || studentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	query := database.Database.Db.Where("student_id = ? AND is_deleted = ?", studentID, false)

	if year := c.Query("academic_year"); year != "" {
		query = query.Where("academic_year = ?", year)
	}
	if semester := c.QueryInt("semester"); semester > 0 {
		query = query.Where("semester = ?", semester)
	}

	var rows []models.Marks
	if err := query.Order("subject_id, exam_type").Find(&rows).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch marks!", nil)
	}

	views := make([]marksView, 0, len(rows))
	for _, m := range rows {
		views = append(views, withDerived(m))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student marks.", views)
}
