package adminController

import (
	"deptportal/database"
	"deptportal/middleware"
	"deptportal/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// Dashboard aggregates headline counts and recent activity windows.
func Dashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var students, faculty, subjects int64
	db.Model(&models.Student{}).Where("is_deleted = ?", false).Count(&students)
	db.Model(&models.Faculty{}).Where("is_deleted = ?", false).Count(&faculty)
	db.Model(&models.Subject{}).Where("is_deleted = ?", false).Count(&subjects)

	today := now.BeginningOfDay()
	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	var markedToday, markedThisWeek int64
	db.Model(&models.Attendance{}).
		Where("is_deleted = ? AND date >= ?", false, today).
		Count(&markedToday)
	db.Model(&models.Attendance{}).
		Where("is_deleted = ? AND date >= ?", false, weekStart).
		Count(&markedThisWeek)

	var presentToday int64
	db.Model(&models.Attendance{}).
		Where("is_deleted = ? AND date >= ? AND status IN ?", false, today,
			[]models.AttendanceStatus{models.AttendancePresent, models.AttendanceLate}).
		Count(&presentToday)

	presentPercent := 0.0
	if markedToday > 0 {
		presentPercent = float64(presentToday) / float64(markedToday) * 100
	}

	var marksThisMonth int64
	db.Model(&models.Marks{}).
		Where("is_deleted = ? AND updated_at >= ?", false, monthStart).
		Count(&marksThisMonth)

	var loginsToday int64
	db.Model(&models.LoginTracking{}).
		Where("timestamp >= ?", today).
		Count(&loginsToday)

	var upcomingEvents []models.Event
	db.Where("is_deleted = ? AND event_date >= ?", false, time.Now()).
		Order("event_date").
		Limit(5).
		Find(&upcomingEvents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard.", fiber.Map{
		"counts": fiber.Map{
			"students": students,
			"faculty":  faculty,
			"subjects": subjects,
		},
		"attendance": fiber.Map{
			"marked_today":          markedToday,
			"marked_this_week":      markedThisWeek,
			"present_percent_today": presentPercent,
		},
		"marks_entries_this_month": marksThisMonth,
		"logins_today":             loginsToday,
		"upcoming_events":          upcomingEvents,
	})
}
