package adminController

import (
	"deptportal/config"
	"deptportal/database"
	"deptportal/models"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type facultyPayload = struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Password    string `json:"password"`
	Designation string `json:"designation"`
	Department  string `json:"department"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Faculty{}, &models.Student{}, &models.Subject{}))

	database.Database = database.DbInstance{Db: db}
	return db
}

func postCreateFaculty(t *testing.T, payload *facultyPayload) int {
	t.Helper()

	app := fiber.New()
	app.Post("/faculty", func(c *fiber.Ctx) error {
		c.Locals("validatedFaculty", payload)
		return CreateFaculty(c)
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/faculty", nil), 10000)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateFacultyRejectsDuplicateEmail(t *testing.T) {
	newTestDB(t)

	payload := &facultyPayload{
		Name:     "Asha Rao",
		Email:    "asha@dept.edu",
		Password: "secret1",
	}

	assert.Equal(t, fiber.StatusCreated, postCreateFaculty(t, payload))
	assert.Equal(t, fiber.StatusConflict, postCreateFaculty(t, payload))
}

func TestCreateFacultyFailsWhenUniquenessCheckErrors(t *testing.T) {
	db := newTestDB(t)

	// A broken datastore must surface as a server error, never be mistaken
	// for "email is free" and fall through to the create.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	payload := &facultyPayload{
		Name:     "Ravi Kumar",
		Email:    "ravi@dept.edu",
		Password: "secret1",
	}

	assert.Equal(t, fiber.StatusInternalServerError, postCreateFaculty(t, payload))
}
