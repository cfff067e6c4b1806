package marksValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/marks/bulk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/marks/bulk", BulkEnter(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestBulkEnterAcceptsValidPayload(t *testing.T) {
	app := newApp()

	code := postJSON(t, app, `{
		"subject_id": 3, "exam_type": "internal_1", "max_marks": 50,
		"academic_year": "2025-26", "semester": 5,
		"marks_records": [
			{"student_id": 1, "marks_obtained": 42},
			{"student_id": 2, "marks_obtained": 35, "remarks": "improved"}
		]
	}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestBulkEnterAcceptsEmptyBatch(t *testing.T) {
	app := newApp()

	// Degenerate but valid: an empty record list passes validation.
	code := postJSON(t, app, `{
		"subject_id": 3, "exam_type": "quiz", "max_marks": 10,
		"academic_year": "2025-26", "semester": 5, "marks_records": []
	}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestBulkEnterRejectsBadPayloads(t *testing.T) {
	app := newApp()

	cases := map[string]string{
		"unknown exam type": `{"subject_id":3,"exam_type":"midterm","max_marks":50,"academic_year":"2025-26","semester":5,"marks_records":[]}`,
		"zero max marks":    `{"subject_id":3,"exam_type":"quiz","max_marks":0,"academic_year":"2025-26","semester":5,"marks_records":[]}`,
		"missing year":      `{"subject_id":3,"exam_type":"quiz","max_marks":10,"semester":5,"marks_records":[]}`,
		"bad semester":      `{"subject_id":3,"exam_type":"quiz","max_marks":10,"academic_year":"2025-26","semester":9,"marks_records":[]}`,
		"missing subject":   `{"exam_type":"quiz","max_marks":10,"academic_year":"2025-26","semester":5,"marks_records":[]}`,
		"duplicate student": `{"subject_id":3,"exam_type":"quiz","max_marks":10,"academic_year":"2025-26","semester":5,"marks_records":[{"student_id":1,"marks_obtained":5},{"student_id":1,"marks_obtained":6}]}`,
		"bad exam date":     `{"subject_id":3,"exam_type":"quiz","max_marks":10,"academic_year":"2025-26","semester":5,"exam_date":"31-01-2026","marks_records":[]}`,
	}

	for name, body := range cases {
		assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, body), name)
	}
}
