package adminController

import (
	"deptportal/config"
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"deptportal/utils"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// duplicateCheck runs a uniqueness lookup and separates "already taken" from
// a failing datastore. Only ErrRecordNotFound means the value is free.
func duplicateCheck(err error) (taken bool, dbErr error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// CreateFaculty provisions a faculty account and emails a welcome note.
func CreateFaculty(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFaculty").(*struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Mobile      string `json:"mobile"`
		Password    string `json:"password"`
		Designation string `json:"designation"`
		Department  string `json:"department"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	taken, dbErr := duplicateCheck(db.Where("email = ?", reqData.Email).First(&models.Faculty{}).Error)
	if dbErr != nil {
		log.Printf("Error checking faculty email uniqueness: %v", dbErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	faculty := models.Faculty{
		Name:        reqData.Name,
		Email:       reqData.Email,
		Mobile:      reqData.Mobile,
		Password:    string(hashedPassword),
		Designation: reqData.Designation,
		Department:  reqData.Department,
	}

	if err := db.Create(&faculty).Error; err != nil {
		log.Printf("Error saving faculty to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create faculty account!", nil)
	}

	utils.SendWelcomeEmail(faculty.Email, faculty.Name, "faculty")

	faculty.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Faculty account created.", faculty)
}

// CreateStudent provisions a student account and emails a welcome note.
func CreateStudent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedStudent").(*struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Mobile       string `json:"mobile"`
		Password     string `json:"password"`
		RollNumber   string `json:"roll_number"`
		Department   string `json:"department"`
		Semester     int    `json:"semester"`
		Section      string `json:"section"`
		AcademicYear string `json:"academic_year"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	taken, dbErr := duplicateCheck(db.Where("email = ?", reqData.Email).First(&models.Student{}).Error)
	if dbErr != nil {
		log.Printf("Error checking student email uniqueness: %v", dbErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}
	taken, dbErr = duplicateCheck(db.Where("roll_number = ?", reqData.RollNumber).First(&models.Student{}).Error)
	if dbErr != nil {
		log.Printf("Error checking roll number uniqueness: %v", dbErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Roll number is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	student := models.Student{
		Name:         reqData.Name,
		Email:        reqData.Email,
		Mobile:       reqData.Mobile,
		Password:     string(hashedPassword),
		RollNumber:   reqData.RollNumber,
		Department:   reqData.Department,
		Semester:     reqData.Semester,
		Section:      reqData.Section,
		AcademicYear: reqData.AcademicYear,
	}

	if err := db.Create(&student).Error; err != nil {
		log.Printf("Error saving student to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create student account!", nil)
	}

	utils.SendWelcomeEmail(student.Email, student.Name, "student")

	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Student account created.", student)
}

// UpdateFaculty applies a partial update to a faculty profile. Email and
// password are not editable here; password changes go through the reset flow.
func UpdateFaculty(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid faculty id!", nil)
	}

	reqData := new(struct {
		Name        string `json:"name"`
		Mobile      string `json:"mobile"`
		Designation string `json:"designation"`
		Department  string `json:"department"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != "" {
		updates["name"] = reqData.Name
	}
	if reqData.Mobile != "" {
		updates["mobile"] = reqData.Mobile
	}
	if reqData.Designation != "" {
		updates["designation"] = reqData.Designation
	}
	if reqData.Department != "" {
		updates["department"] = reqData.Department
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	res := database.Database.Db.Model(&models.Faculty{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update faculty!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Faculty not found!", nil)
	}

	var faculty models.Faculty
	database.Database.Db.First(&faculty, id)
	faculty.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Faculty updated.", faculty)
}

// UpdateStudent applies a partial update to a student profile.
func UpdateStudent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student id!", nil)
	}

	reqData := new(struct {
		Name         string `json:"name"`
		Mobile       string `json:"mobile"`
		Semester     int    `json:"semester"`
		Section      string `json:"section"`
		AcademicYear string `json:"academic_year"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Name != "" {
		updates["name"] = reqData.Name
	}
	if reqData.Mobile != "" {
		updates["mobile"] = reqData.Mobile
	}
	if reqData.Semester > 0 {
		if reqData.Semester > 8 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Semester must be between 1 and 8!", nil)
		}
		updates["semester"] = reqData.Semester
	}
	if reqData.Section != "" {
		updates["section"] = reqData.Section
	}
	if reqData.AcademicYear != "" {
		updates["academic_year"] = reqData.AcademicYear
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	res := database.Database.Db.Model(&models.Student{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update student!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var student models.Student
	database.Database.Db.First(&student, id)
	student.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student updated.", student)
}

// ListFaculty returns active faculty accounts.
func ListFaculty(c *fiber.Ctx) error {
	var faculty []models.Faculty
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("name").
		Find(&faculty).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch faculty!", nil)
	}

	for i := range faculty {
		faculty[i].Password = ""
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Faculty list.", faculty)
}

// ListStudents returns active students, optionally filtered by semester/section.
func ListStudents(c *fiber.Ctx) error {
	query := database.Database.Db.Where("is_deleted = ?", false)

	if semester := c.QueryInt("semester"); semester > 0 {
		query = query.Where("semester = ?", semester)
	}
	if section := c.Query("section"); section != "" {
		query = query.Where("section = ?", section)
	}

	var students []models.Student
	if err := query.Order("roll_number").Find(&students).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	for i := range students {
		students[i].Password = ""
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student list.", students)
}

// DeactivateAccount soft-deletes a faculty or student account.
func DeactivateAccount(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid account id!", nil)
	}

	role := models.Role(c.Params("role"))
	if role != models.RoleFaculty && role != models.RoleStudent {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Role must be faculty or student!", nil)
	}

	db := database.Database.Db

	var res = db.Model(&models.Student{})
	if role == models.RoleFaculty {
		res = db.Model(&models.Faculty{})
	}

	update := res.Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if update.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to deactivate account!", nil)
	}
	if update.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Account deactivated.", nil)
}

// CreateSubject registers a subject and its in-charge faculty.
func CreateSubject(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSubject").(*struct {
		Code         string `json:"code"`
		Name         string `json:"name"`
		Department   string `json:"department"`
		Semester     int    `json:"semester"`
		Credits      int    `json:"credits"`
		AcademicYear string `json:"academic_year"`
		FacultyID    uint   `json:"faculty_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	taken, dbErr := duplicateCheck(db.Where("code = ?", reqData.Code).First(&models.Subject{}).Error)
	if dbErr != nil {
		log.Printf("Error checking subject code uniqueness: %v", dbErr)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}
	if taken {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Subject code already exists!", nil)
	}

	if reqData.FacultyID > 0 {
		if err := db.Where("id = ? AND is_deleted = ?", reqData.FacultyID, false).
			First(&models.Faculty{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Faculty not found!", nil)
		}
	}

	subject := models.Subject{
		Code:         reqData.Code,
		Name:         reqData.Name,
		Department:   reqData.Department,
		Semester:     reqData.Semester,
		Credits:      reqData.Credits,
		AcademicYear: reqData.AcademicYear,
		FacultyID:    reqData.FacultyID,
	}

	if err := db.Create(&subject).Error; err != nil {
		log.Printf("Error saving subject: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create subject!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Subject created.", subject)
}

// ListSubjects returns active subjects, optionally filtered by semester.
func ListSubjects(c *fiber.Ctx) error {
	query := database.Database.Db.Where("is_deleted = ?", false)

	if semester := c.QueryInt("semester"); semester > 0 {
		query = query.Where("semester = ?", semester)
	}

	var subjects []models.Subject
	if err := query.Order("code").Find(&subjects).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch subjects!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subject list.", subjects)
}
