package adminController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"encoding/json"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CreateNews publishes a news item.
func CreateNews(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedNews").(*struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	news := models.News{
		Title:       reqData.Title,
		Content:     reqData.Content,
		PublishedAt: time.Now(),
		PostedBy:    adminID,
		IsPublished: true,
	}

	if err := database.Database.Db.Create(&news).Error; err != nil {
		log.Printf("Error saving news: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish news!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "News published.", news)
}

// CreateEvent publishes an event with an optional image gallery.
func CreateEvent(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedEvent").(*struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Venue       string   `json:"venue"`
		EventDate   string   `json:"event_date"`
		Gallery     []string `json:"gallery"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	eventDate, err := time.Parse("2006-01-02", reqData.EventDate)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid event date, expected YYYY-MM-DD!", nil)
	}

	gallery, err := json.Marshal(reqData.Gallery)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid gallery payload!", nil)
	}

	event := models.Event{
		Title:       reqData.Title,
		Description: reqData.Description,
		Venue:       reqData.Venue,
		EventDate:   eventDate,
		Gallery:     datatypes.JSON(gallery),
		PostedBy:    adminID,
	}

	if err := database.Database.Db.Create(&event).Error; err != nil {
		log.Printf("Error saving event: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Event published.", event)
}

// CreateAchievement records a student or department achievement with a
// verifiable certificate number.
func CreateAchievement(c *fiber.Ctx) error {
	adminID, _ := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedAchievement").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		StudentID   *uint  `json:"student_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if reqData.StudentID != nil {
		if err := db.Where("id = ? AND is_deleted = ?", *reqData.StudentID, false).
			First(&models.Student{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
		}
	}

	achievement := models.Achievement{
		Title:             reqData.Title,
		Description:       reqData.Description,
		StudentID:         reqData.StudentID,
		CertificateNumber: uuid.NewString(),
		PostedBy:          adminID,
	}

	if err := db.Create(&achievement).Error; err != nil {
		log.Printf("Error saving achievement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record achievement!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Achievement recorded.", achievement)
}

// UpdateNews applies a partial update to a news item, including pulling it
// from or returning it to the public listing.
func UpdateNews(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		IsPublished *bool  `json:"is_published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	updates := map[string]interface{}{}
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	if reqData.Content != "" {
		updates["content"] = reqData.Content
	}
	if reqData.IsPublished != nil {
		updates["is_published"] = *reqData.IsPublished
	}
	if len(updates) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing to update!", nil)
	}

	res := database.Database.Db.Model(&models.News{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update news!", nil)
	}
	if res.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	var news models.News
	database.Database.Db.First(&news, id)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "News updated.", news)
}

// DeleteNewsItem soft-deletes a news item, event or achievement.
func DeleteNewsItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid id!", nil)
	}

	db := database.Database.Db

	var res = db.Model(&models.News{})
	switch c.Params("kind") {
	case "news":
		// default
	case "events":
		res = db.Model(&models.Event{})
	case "achievements":
		res = db.Model(&models.Achievement{})
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Kind must be news, events or achievements!", nil)
	}

	update := res.Where("id = ? AND is_deleted = ?", id, false).Update("is_deleted", true)
	if update.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete item!", nil)
	}
	if update.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Item not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Item deleted.", nil)
}

// --- Public listings (no auth) ---

// ListNews returns published news, newest first.
func ListNews(c *fiber.Ctx) error {
	var news []models.News
	if err := database.Database.Db.
		Where("is_published = ? AND is_deleted = ?", true, false).
		Order("published_at DESC").
		Limit(50).
		Find(&news).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch news!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "News.", news)
}

// ListEvents returns upcoming and recent events.
func ListEvents(c *fiber.Ctx) error {
	var events []models.Event
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("event_date DESC").
		Limit(50).
		Find(&events).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch events!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Events.", events)
}

// ListAchievements returns recorded achievements.
func ListAchievements(c *fiber.Ctx) error {
	var achievements []models.Achievement
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(50).
		Find(&achievements).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch achievements!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Achievements.", achievements)
}
