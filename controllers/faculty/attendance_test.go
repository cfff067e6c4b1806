package facultyController

import (
	"deptportal/database"
	"deptportal/models"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB wires an in-memory sqlite database into the global instance so
// the handlers run against real upsert and transaction semantics.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One shared in-memory database for both the pool and transactions.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Subject{}, &models.Attendance{}, &models.Marks{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func seedSubject(t *testing.T, db *gorm.DB) models.Subject {
	t.Helper()
	subject := models.Subject{Code: "CS501", Name: "Operating Systems", Semester: 5, AcademicYear: "2025-26"}
	require.NoError(t, db.Create(&subject).Error)
	return subject
}

// postBulkAttendance runs the handler with the validated payload already in
// Locals, the way the route's validator middleware would leave it.
func postBulkAttendance(t *testing.T, req *models.BulkAttendanceRequest, facultyID uint) int {
	t.Helper()

	app := fiber.New()
	app.Post("/bulk", func(c *fiber.Ctx) error {
		c.Locals("userId", facultyID)
		c.Locals("validatedBulkAttendance", req)
		return BulkMarkAttendance(c)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/bulk", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestBulkAttendanceUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkAttendanceRequest{
		SubjectID:    subject.ID,
		Date:         "2026-02-10",
		Period:       3,
		AcademicYear: "2025-26",
		Semester:     5,
		Records: []models.AttendanceRecordInput{
			{StudentID: 1, Status: models.AttendancePresent},
			{StudentID: 2, Status: models.AttendancePresent},
			{StudentID: 3, Status: models.AttendanceAbsent},
		},
	}

	assert.Equal(t, fiber.StatusOK, postBulkAttendance(t, req, 11))

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 3, count)

	// The same batch resubmitted with corrections must overwrite in place,
	// never duplicate the slot.
	req.Records = []models.AttendanceRecordInput{
		{StudentID: 1, Status: models.AttendanceAbsent, Remarks: "left early"},
		{StudentID: 2, Status: models.AttendancePresent},
		{StudentID: 3, Status: models.AttendanceLate},
	}
	assert.Equal(t, fiber.StatusOK, postBulkAttendance(t, req, 11))

	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 3, count)

	var first models.Attendance
	require.NoError(t, db.Where("student_id = ?", 1).First(&first).Error)
	assert.Equal(t, models.AttendanceAbsent, first.Status)
	assert.Equal(t, "left early", first.Remarks)

	var third models.Attendance
	require.NoError(t, db.Where("student_id = ?", 3).First(&third).Error)
	assert.Equal(t, models.AttendanceLate, third.Status)
}

func TestBulkAttendanceRollsBackWholeBatchOnFailure(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	// Force a write failure for one specific student mid-batch.
	err := db.Callback().Create().Before("gorm:create").Register("fail_marked_student", func(tx *gorm.DB) {
		if row, ok := tx.Statement.Dest.(*models.Attendance); ok && row.StudentID == 99 {
			tx.AddError(errors.New("induced write failure"))
		}
	})
	require.NoError(t, err)

	req := &models.BulkAttendanceRequest{
		SubjectID:    subject.ID,
		Date:         "2026-02-10",
		Period:       1,
		AcademicYear: "2025-26",
		Semester:     5,
		Records: []models.AttendanceRecordInput{
			{StudentID: 1, Status: models.AttendancePresent},
			{StudentID: 99, Status: models.AttendancePresent},
			{StudentID: 2, Status: models.AttendancePresent},
		},
	}

	assert.Equal(t, fiber.StatusInternalServerError, postBulkAttendance(t, req, 11))

	// All-or-nothing: the record written before the failure must be gone too.
	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBulkAttendanceEmptyBatchCommitsNothing(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkAttendanceRequest{
		SubjectID:    subject.ID,
		Date:         "2026-02-10",
		Period:       2,
		AcademicYear: "2025-26",
		Semester:     5,
	}

	assert.Equal(t, fiber.StatusOK, postBulkAttendance(t, req, 11))

	var count int64
	db.Model(&models.Attendance{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBulkAttendanceRevivesSoftDeletedSlot(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkAttendanceRequest{
		SubjectID:    subject.ID,
		Date:         "2026-02-10",
		Period:       4,
		AcademicYear: "2025-26",
		Semester:     5,
		Records: []models.AttendanceRecordInput{
			{StudentID: 7, Status: models.AttendancePresent},
		},
	}
	require.Equal(t, fiber.StatusOK, postBulkAttendance(t, req, 11))

	// Admin removes the record; the row still occupies the slot's unique key.
	require.NoError(t, db.Model(&models.Attendance{}).
		Where("student_id = ?", 7).
		Update("is_deleted", true).Error)

	// Re-marking the slot must bring it back into the visible listings, not
	// report success while leaving it hidden.
	req.Records = []models.AttendanceRecordInput{
		{StudentID: 7, Status: models.AttendanceLate},
	}
	require.Equal(t, fiber.StatusOK, postBulkAttendance(t, req, 11))

	var row models.Attendance
	require.NoError(t, db.Where("student_id = ? AND is_deleted = ?", 7, false).First(&row).Error)
	assert.Equal(t, models.AttendanceLate, row.Status)

	var visible int64
	db.Model(&models.Attendance{}).Where("is_deleted = ?", false).Count(&visible)
	assert.EqualValues(t, 1, visible)
}
