package authController

import (
	"deptportal/config"
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxFailedLogins = 3
	lockoutWindow   = 15 * time.Minute
)

// credentials is the slice of an account row the login flow needs,
// independent of which role table it came from.
type credentials struct {
	ID                  uint
	Name                string
	Email               string
	Password            string
	FailedLoginAttempts int
	LastFailedLogin     *time.Time
	IsBlocked           bool
	BlockedUntil        *time.Time
}

// tableForRole maps a role onto its account table.
func tableForRole(role models.Role) string {
	switch role {
	case models.RoleAdmin:
		return "admins"
	case models.RoleFaculty:
		return "faculties"
	default:
		return "students"
	}
}

// Login authenticates against the account table matching the requested role
// and issues a JWT carrying the role claim. Three consecutive failures block
// the account for fifteen minutes.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	role := models.Role(reqData.Role)
	table := tableForRole(role)

	var user credentials
	if err := db.Table(table).
		Select("id, name, email, password, failed_login_attempts, last_failed_login, is_blocked, blocked_until").
		Where("email = ? AND is_deleted = ? AND deleted_at IS NULL", reqData.Email, false).
		Take(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	now := time.Now()

	// Check if the user is blocked
	if user.IsBlocked && user.BlockedUntil != nil && user.BlockedUntil.After(now) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Your account is temporarily blocked. Try again later.", nil)
	}

	// Stale failures no longer count against the account
	if user.LastFailedLogin != nil && time.Since(*user.LastFailedLogin) > lockoutWindow {
		user.FailedLoginAttempts = 0
		db.Table(table).Where("id = ?", user.ID).Updates(map[string]interface{}{
			"failed_login_attempts": 0,
			"last_failed_login":     nil,
		})
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		user.FailedLoginAttempts++

		updates := map[string]interface{}{
			"failed_login_attempts": user.FailedLoginAttempts,
			"last_failed_login":     now,
		}

		// Block the account after repeated failures
		if user.FailedLoginAttempts >= maxFailedLogins {
			updates["is_blocked"] = true
			updates["blocked_until"] = now.Add(lockoutWindow)
		}

		if err := db.Table(table).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
			log.Printf("Error recording failed login: %v", err)
		}

		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Successful login resets the lockout state
	if err := db.Table(table).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"last_login":            now,
		"failed_login_attempts": 0,
		"is_blocked":            false,
	}).Error; err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	ip := c.IP()
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip = forwarded
	}

	loginTracking := models.LoginTracking{
		UserID:    user.ID,
		Role:      role,
		IPAddress: ip,
		Device:    c.Get("User-Agent"),
		Timestamp: now,
	}
	if err := db.Create(&loginTracking).Error; err != nil {
		log.Printf("Error saving login tracking details: %v", err)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, string(role), user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  role,
		},
		"token": token,
	})
}

// ChangePassword lets an authenticated user rotate their own password.
func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	roleStr, _ := c.Locals("role").(string)
	role := models.Role(roleStr)
	if !role.Valid() {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedChangePassword").(*struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	table := tableForRole(role)

	var user credentials
	if err := db.Table(table).
		Select("id, password").
		Where("id = ? AND is_deleted = ? AND deleted_at IS NULL", userID, false).
		Take(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.CurrentPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Current password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := db.Table(table).Where("id = ?", userID).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password changed successfully.", nil)
}

// LoginHistoryList returns the caller's paginated login history.
func LoginHistoryList(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	roleStr, _ := c.Locals("role").(string)

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	db := database.Database.Db

	var history []models.LoginTracking
	if err := db.Where("user_id = ? AND role = ? AND is_deleted = ?", userID, roleStr, false).
		Order("timestamp DESC").
		Offset(offset).
		Limit(limit).
		Find(&history).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch login history!", nil)
	}

	var total int64
	db.Model(&models.LoginTracking{}).
		Where("user_id = ? AND role = ? AND is_deleted = ?", userID, roleStr, false).
		Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history.", fiber.Map{
		"history": history,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
