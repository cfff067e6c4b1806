package adminValidator

import (
	"deptportal/middleware"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CreateFaculty validator middleware
func CreateFaculty() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Email       string `json:"email"`
			Mobile      string `json:"mobile"`
			Password    string `json:"password"`
			Designation string `json:"designation"`
			Department  string `json:"department"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if len(strings.TrimSpace(reqData.Password)) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFaculty", reqData)
		return c.Next()
	}
}

// CreateStudent validator middleware
func CreateStudent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
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
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Name)) < 3 {
			errors["name"] = "Name must be at least 3 characters long!"
		}
		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}
		if len(strings.TrimSpace(reqData.Password)) < 6 {
			errors["password"] = "Password must be at least 6 characters long!"
		}
		if strings.TrimSpace(reqData.RollNumber) == "" {
			errors["roll_number"] = "Roll number is required!"
		}
		if reqData.Semester < 1 || reqData.Semester > 8 {
			errors["semester"] = "Semester must be between 1 and 8!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStudent", reqData)
		return c.Next()
	}
}

// CreateSubject validator middleware
func CreateSubject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Code         string `json:"code"`
			Name         string `json:"name"`
			Department   string `json:"department"`
			Semester     int    `json:"semester"`
			Credits      int    `json:"credits"`
			AcademicYear string `json:"academic_year"`
			FacultyID    uint   `json:"faculty_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Code) == "" {
			errors["code"] = "Subject code is required!"
		}
		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Subject name is required!"
		}
		if reqData.Semester < 1 || reqData.Semester > 8 {
			errors["semester"] = "Semester must be between 1 and 8!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSubject", reqData)
		return c.Next()
	}
}

// AssignMentor validator middleware
func AssignMentor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FacultyID    uint   `json:"faculty_id"`
			StudentIDs   []uint `json:"student_ids"`
			AcademicYear string `json:"academic_year"`
			Notes        string `json:"notes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.FacultyID < 1 {
			errors["faculty_id"] = "Faculty id is required!"
		}
		if len(reqData.StudentIDs) == 0 {
			errors["student_ids"] = "At least one student is required!"
		}
		if strings.TrimSpace(reqData.AcademicYear) == "" {
			errors["academic_year"] = "Academic year is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMentorship", reqData)
		return c.Next()
	}
}

// CreateNews validator middleware
func CreateNews() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNews", reqData)
		return c.Next()
	}
}

// CreateEvent validator middleware
func CreateEvent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Venue       string   `json:"venue"`
			EventDate   string   `json:"event_date"`
			Gallery     []string `json:"gallery"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.EventDate) == "" {
			errors["event_date"] = "Event date is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEvent", reqData)
		return c.Next()
	}
}

// CreateAchievement validator middleware
func CreateAchievement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			StudentID   *uint  `json:"student_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAchievement", reqData)
		return c.Next()
	}
}
