package attendanceValidator

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
	req := httptest.NewRequest("POST", "/attendance/bulk", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Post("/attendance/bulk", BulkMark(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestBulkMarkAcceptsValidPayload(t *testing.T) {
	app := newApp()

	code := postJSON(t, app, `{
		"subject_id": 7, "date": "2026-01-19", "period": 3,
		"academic_year": "2025-26", "semester": 5,
		"attendance_records": [
			{"student_id": 1, "status": "present"},
			{"student_id": 2, "status": "absent", "remarks": "informed"},
			{"student_id": 3, "status": "on_leave"}
		]
	}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestBulkMarkAcceptsEmptyBatch(t *testing.T) {
	app := newApp()

	code := postJSON(t, app, `{
		"subject_id": 7, "date": "2026-01-19", "period": 3,
		"academic_year": "2025-26", "semester": 5, "attendance_records": []
	}`)
	assert.Equal(t, fiber.StatusOK, code)
}

func TestBulkMarkRejectsBadPayloads(t *testing.T) {
	app := newApp()

	cases := map[string]string{
		"bad date format":   `{"subject_id":7,"date":"19/01/2026","period":3,"academic_year":"2025-26","semester":5,"attendance_records":[]}`,
		"missing date":      `{"subject_id":7,"period":3,"academic_year":"2025-26","semester":5,"attendance_records":[]}`,
		"period too high":   `{"subject_id":7,"date":"2026-01-19","period":11,"academic_year":"2025-26","semester":5,"attendance_records":[]}`,
		"unknown status":    `{"subject_id":7,"date":"2026-01-19","period":3,"academic_year":"2025-26","semester":5,"attendance_records":[{"student_id":1,"status":"sick"}]}`,
		"duplicate student": `{"subject_id":7,"date":"2026-01-19","period":3,"academic_year":"2025-26","semester":5,"attendance_records":[{"student_id":1,"status":"present"},{"student_id":1,"status":"late"}]}`,
		"missing subject":   `{"date":"2026-01-19","period":3,"academic_year":"2025-26","semester":5,"attendance_records":[]}`,
	}

	for name, body := range cases {
		assert.Equal(t, fiber.StatusBadRequest, postJSON(t, app, body), name)
	}
}
