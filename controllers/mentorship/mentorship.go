package mentorshipController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// AssignMentor assigns a faculty mentor to students for an academic year.
// A student already mentored in that year gets the new mentor (overwrite).
func AssignMentor(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedMentorship").(*struct {
		FacultyID    uint   `json:"faculty_id"`
		StudentIDs   []uint `json:"student_ids"`
		AcademicYear string `json:"academic_year"`
		Notes        string `json:"notes"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("id = ? AND is_deleted = ?", reqData.FacultyID, false).
		First(&models.Faculty{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Faculty not found!", nil)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start transaction!", nil)
	}

	assignments := make([]models.Mentorship, 0, len(reqData.StudentIDs))
	for _, studentID := range reqData.StudentIDs {
		if err := tx.Where("id = ? AND is_deleted = ?", studentID, false).
			First(&models.Student{}).Error; err != nil {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more students not found, nothing was assigned!", nil)
		}

		row := models.Mentorship{
			FacultyID:    reqData.FacultyID,
			StudentID:    studentID,
			AcademicYear: reqData.AcademicYear,
			AssignedBy:   adminID,
			Notes:        reqData.Notes,
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "academic_year"}},
			DoUpdates: clause.AssignmentColumns([]string{"faculty_id", "assigned_by", "notes", "is_deleted", "updated_at"}),
		}).Create(&row).Error; err != nil {
			tx.Rollback()
			log.Printf("Error assigning mentor for student %d: %v", studentID, err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign mentor, nothing was assigned!", nil)
		}
		assignments = append(assignments, row)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing mentorship batch: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to assign mentor, nothing was assigned!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor assigned.", assignments)
}

// ListMentees returns the calling faculty's mentees for an academic year.
func ListMentees(c *fiber.Ctx) error {
	facultyID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	query := database.Database.Db.Where("faculty_id = ? AND is_deleted = ?", facultyID, false)
	if year := c.Query("academic_year"); year != "" {
		query = query.Where("academic_year = ?", year)
	}

	var mentorships []models.Mentorship
	if err := query.Find(&mentorships).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch mentees!", nil)
	}

	type menteeView struct {
		models.Mentorship
		StudentName string `json:"student_name"`
		RollNumber  string `json:"roll_number"`
	}

	views := make([]menteeView, 0, len(mentorships))
	for _, m := range mentorships {
		v := menteeView{Mentorship: m}
		var student models.Student
		if err := database.Database.Db.Select("name, roll_number").
			First(&student, m.StudentID).Error; err == nil {
			v.StudentName = student.Name
			v.RollNumber = student.RollNumber
		}
		views = append(views, v)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentee list.", views)
}

// MyMentor returns the calling student's mentor for an academic year.
func MyMentor(c *fiber.Ctx) error {
	studentID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	query := database.Database.Db.Where("student_id = ? AND is_deleted = ?", studentID, false)
	if year := c.Query("academic_year"); year != "" {
		query = query.Where("academic_year = ?", year)
	}

	var mentorship models.Mentorship
	if err := query.Order("academic_year DESC").First(&mentorship).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No mentor assigned!", nil)
	}

	var mentor models.Faculty
	if err := database.Database.Db.Select("id, name, email, designation, department").
		First(&mentor, mentorship.FacultyID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch mentor!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Mentor details.", fiber.Map{
		"mentor":        mentor,
		"academic_year": mentorship.AcademicYear,
		"notes":         mentorship.Notes,
	})
}
