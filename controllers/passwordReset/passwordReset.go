package passwordResetController

import (
	"deptportal/config"
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"deptportal/otpstore"
	"deptportal/utils"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Store holds the process-wide OTP store. Wired up in main before routes
// are registered.
var Store *otpstore.Store

// Generic message returned whether or not the email exists, so the endpoint
// cannot be used to probe for registered addresses.
const genericRequestMessage = "If the email exists, an OTP has been sent to it."

// account is the role-independent slice of an account row the reset flow needs.
type account struct {
	ID     uint
	Name   string
	Email  string
	Mobile string
}

// findAccount looks up an active account by email in the table matching the role.
func findAccount(db *gorm.DB, role models.Role, email string) (account, error) {
	var acc account

	switch role {
	case models.RoleAdmin:
		var a models.Admin
		if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&a).Error; err != nil {
			return acc, err
		}
		acc = account{ID: a.ID, Name: a.Name, Email: a.Email, Mobile: a.Mobile}
	case models.RoleFaculty:
		var f models.Faculty
		if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&f).Error; err != nil {
			return acc, err
		}
		acc = account{ID: f.ID, Name: f.Name, Email: f.Email, Mobile: f.Mobile}
	case models.RoleStudent:
		var s models.Student
		if err := db.Where("email = ? AND is_deleted = ?", email, false).First(&s).Error; err != nil {
			return acc, err
		}
		acc = account{ID: s.ID, Name: s.Name, Email: s.Email, Mobile: s.Mobile}
	default:
		return acc, gorm.ErrRecordNotFound
	}

	return acc, nil
}

// updatePassword persists a new password hash on the role's account table.
func updatePassword(db *gorm.DB, role models.Role, userID uint, hash string) error {
	var model interface{}
	switch role {
	case models.RoleAdmin:
		model = &models.Admin{}
	case models.RoleFaculty:
		model = &models.Faculty{}
	case models.RoleStudent:
		model = &models.Student{}
	default:
		return gorm.ErrRecordNotFound
	}

	res := db.Model(model).Where("id = ?", userID).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RequestReset issues a fresh OTP for the (role, email) key and emails it.
// A request for an unknown email still answers with the generic success
// envelope: account existence is never revealed to an unauthenticated caller.
func RequestReset(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedReset").(*struct {
		Email string `json:"email"`
		Role  string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	role := models.Role(reqData.Role)

	acc, err := findAccount(db, role, reqData.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No account, no OTP, same answer.
			return middleware.JsonResponse(c, fiber.StatusOK, true, genericRequestMessage, fiber.Map{
				"email":     reqData.Email,
				"expiresIn": "10 minutes",
			})
		}
		log.Printf("Error looking up account for reset: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	otp := utils.GenerateOTP()

	// The OTP email is the whole point of this request: if it cannot be
	// sent, the caller must get an error, not a false success.
	if err := utils.SendOTPEmail(acc.Email, acc.Name, otp); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP email!", nil)
	}

	// SMS is a supplementary channel; failures are logged inside and ignored.
	if acc.Mobile != "" && config.AppConfig.SMSApiKey != "" {
		go utils.SendOTPToMobile(acc.Mobile, otp)
	}

	// Replaces any prior entry for this key: only the newest code is valid.
	Store.Put(string(role), reqData.Email, otp, acc.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, genericRequestMessage, fiber.Map{
		"email":     reqData.Email,
		"expiresIn": "10 minutes",
	})
}

// VerifyOTP checks a submitted code and, on success, returns the single-use
// reset-authorization token for the follow-up reset call.
func VerifyOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerify").(*struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
		Role  string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	token, remaining, err := Store.Verify(reqData.Role, reqData.Email, reqData.OTP)
	if err != nil {
		switch {
		case errors.Is(err, otpstore.ErrInvalidCode):
			msg := fmt.Sprintf("Invalid OTP. %d attempt(s) remaining.", remaining)
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, msg, nil)
		case errors.Is(err, otpstore.ErrExpired):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired. Please request a new one.", nil)
		case errors.Is(err, otpstore.ErrTooManyAttempts):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Too many failed attempts. Please request a new OTP.", nil)
		default:
			// Never created, already consumed, or swept after expiry. Folded
			// into 400 instead of 404 to avoid leaking account state.
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No OTP request found for this account.", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified successfully.", fiber.Map{
		"resetToken": token,
	})
}

// ResetPassword consumes a verified reset token and persists the new password.
func ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*struct {
		Email       string `json:"email"`
		ResetToken  string `json:"resetToken"`
		NewPassword string `json:"newPassword"`
		Role        string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	role := models.Role(reqData.Role)

	userID, err := Store.Consume(reqData.Role, reqData.Email, reqData.ResetToken)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid or expired reset token!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	db := database.Database.Db
	if err := updatePassword(db, role, userID, string(hashedPassword)); err != nil {
		log.Printf("Error updating password for %s id %d: %v", role, userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update password!", nil)
	}

	// Confirmation is a courtesy on top of an already-committed change, so a
	// failed send is logged inside and never fails this response. This is
	// intentionally looser than the strict send policy in RequestReset.
	if acc, err := findAccount(db, role, reqData.Email); err == nil {
		utils.SendPasswordChangedEmail(acc.Email, acc.Name)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password has been reset successfully.", nil)
}
