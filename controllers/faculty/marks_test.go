package facultyController

import (
	"deptportal/models"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postBulkMarks(t *testing.T, req *models.BulkMarksRequest, facultyID uint) int {
	t.Helper()

	app := fiber.New()
	app.Post("/bulk", func(c *fiber.Ctx) error {
		c.Locals("userId", facultyID)
		c.Locals("validatedBulkMarks", req)
		return BulkEnterMarks(c)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/bulk", nil))
	require.NoError(t, err)
	return resp.StatusCode
}

func TestBulkMarksUpsertIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkMarksRequest{
		SubjectID:    subject.ID,
		ExamType:     models.ExamQuiz,
		MaxMarks:     20,
		AcademicYear: "2025-26",
		Semester:     5,
		Records: []models.MarksRecordInput{
			{StudentID: 1, MarksObtained: 15},
			{StudentID: 2, MarksObtained: 18},
		},
	}

	assert.Equal(t, fiber.StatusOK, postBulkMarks(t, req, 11))

	var count int64
	db.Model(&models.Marks{}).Count(&count)
	assert.EqualValues(t, 2, count)

	// Resubmission for the same exam overwrites; the latest values win.
	req.Records = []models.MarksRecordInput{
		{StudentID: 1, MarksObtained: 16, Remarks: "re-totaled"},
		{StudentID: 2, MarksObtained: 18},
	}
	assert.Equal(t, fiber.StatusOK, postBulkMarks(t, req, 11))

	db.Model(&models.Marks{}).Count(&count)
	assert.EqualValues(t, 2, count)

	var row models.Marks
	require.NoError(t, db.Where("student_id = ?", 1).First(&row).Error)
	assert.Equal(t, 16.0, row.MarksObtained)
	assert.Equal(t, "re-totaled", row.Remarks)
}

func TestBulkMarksRejectsOutOfBoundsBeforeWriting(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkMarksRequest{
		SubjectID:    subject.ID,
		ExamType:     models.ExamInternal1,
		MaxMarks:     50,
		AcademicYear: "2025-26",
		Semester:     5,
		Records: []models.MarksRecordInput{
			{StudentID: 1, MarksObtained: 45},
			{StudentID: 2, MarksObtained: 51},
		},
	}

	assert.Equal(t, fiber.StatusBadRequest, postBulkMarks(t, req, 11))

	// The in-bounds record must not have been written either.
	var count int64
	db.Model(&models.Marks{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBulkMarksEmptyBatchCommitsNothing(t *testing.T) {
	db := newTestDB(t)
	subject := seedSubject(t, db)

	req := &models.BulkMarksRequest{
		SubjectID:    subject.ID,
		ExamType:     models.ExamQuiz,
		MaxMarks:     10,
		AcademicYear: "2025-26",
		Semester:     5,
	}

	assert.Equal(t, fiber.StatusOK, postBulkMarks(t, req, 11))

	var count int64
	db.Model(&models.Marks{}).Count(&count)
	assert.EqualValues(t, 0, count)
}
