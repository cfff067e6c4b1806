package utils

import (
	"deptportal/database"
	"deptportal/models"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Attendance below this percentage puts a mentee on the digest.
const lowAttendanceThreshold = 75.0

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[DIGEST-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// ProcessMentorDigests emails each mentor the mentees whose overall
// attendance has dropped below the threshold.
func ProcessMentorDigests() {
	db := database.Database.Db

	var mentorships []models.Mentorship
	if err := db.Where("is_deleted = false").Find(&mentorships).Error; err != nil {
		logScheduler("Error fetching mentorships: " + err.Error())
		return
	}

	// mentor id -> digest lines
	digests := make(map[uint][]string)

	for _, m := range mentorships {
		var total, attended int64
		if err := db.Model(&models.Attendance{}).
			Where("student_id = ? AND is_deleted = false", m.StudentID).
			Count(&total).Error; err != nil || total == 0 {
			continue
		}
		db.Model(&models.Attendance{}).
			Where("student_id = ? AND is_deleted = false AND status IN ?",
				m.StudentID, []models.AttendanceStatus{models.AttendancePresent, models.AttendanceLate}).
			Count(&attended)

		percent := float64(attended) / float64(total) * 100
		if percent >= lowAttendanceThreshold {
			continue
		}

		var student models.Student
		if err := db.Select("name, roll_number").First(&student, m.StudentID).Error; err != nil {
			continue
		}

		digests[m.FacultyID] = append(digests[m.FacultyID],
			fmt.Sprintf("%s (%s): %.1f%% (%d of %d classes)",
				student.Name, student.RollNumber, percent, attended, total))
	}

	for facultyID, rows := range digests {
		var mentor models.Faculty
		if err := db.Select("name, email").First(&mentor, facultyID).Error; err != nil || mentor.Email == "" {
			continue
		}
		if err := SendMentorDigestEmail(mentor.Email, mentor.Name, rows); err != nil {
			logScheduler("Error sending digest to " + mentor.Email + ": " + err.Error())
		}
	}

	logScheduler(fmt.Sprintf("Mentor digest run complete: %d mentors notified", len(digests)))
}

// InitializeDigestScheduler schedules the daily mentor digest.
// The returned cron is stopped by main on shutdown.
func InitializeDigestScheduler() *cron.Cron {
	logScheduler("Initializing mentor digest scheduler...")

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}

	c := cron.New(cron.WithLocation(loc))

	// Weekdays at 17:30, after the last teaching period
	c.AddFunc("30 17 * * 1-5", ProcessMentorDigests)

	c.Start()
	logScheduler("Mentor digest scheduler started - runs 5:30 PM IST on weekdays")
	return c
}
