package middleware

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"courier-service/database"
	"courier-service/logger"
	logModel "courier-service/models/log"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupLoggedApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	asyncLogger := logger.NewAsyncLogger(db)
	go asyncLogger.ProcessLog()

	app := fiber.New()
	api := app.Group("/api", RequestLogger(asyncLogger))
	api.Post("/echo", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true})
	})
	return app, db
}

func waitForLogRows(t *testing.T, db *gorm.DB, want int64) []logModel.Log {
	t.Helper()

	// Persistence happens on the logger goroutine
	require.Eventually(t, func() bool {
		var count int64
		db.Model(&logModel.Log{}).Count(&count)
		return count >= want
	}, 2*time.Second, 10*time.Millisecond)

	var rows []logModel.Log
	require.NoError(t, db.Find(&rows).Error)
	return rows
}

func TestRequestLoggerPersistsRequestAndResponse(t *testing.T) {
	app, db := setupLoggedApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/echo", strings.NewReader(`{"hello":"world"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	rows := waitForLogRows(t, db, 1)
	row := rows[0]
	assert.Equal(t, http.MethodPost, row.Method)
	assert.Equal(t, "/api/echo", row.URL)
	assert.Equal(t, http.StatusCreated, row.StatusCode)
	assert.Contains(t, row.RequestBody, `"hello":"world"`)
	assert.Contains(t, row.ResponseBody, `"ok":true`)
	assert.NotEmpty(t, row.ClientIP)
	assert.Contains(t, row.RequestHeaders, "application/json")
}

func TestRequestLoggerStripsUploadedFileContent(t *testing.T) {
	app, db := setupLoggedApp(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("note", "label photo"))
	part, err := writer.CreateFormFile("image", "label.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-binary-image-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/echo", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, err = app.Test(req, -1)
	require.NoError(t, err)

	rows := waitForLogRows(t, db, 1)
	row := rows[0]
	assert.Contains(t, row.RequestBody, "label photo")
	assert.Contains(t, row.RequestBody, "label.png")
	assert.Contains(t, row.RequestBody, "[FILE_CONTENT_REMOVED]")
	assert.NotContains(t, row.RequestBody, "fake-binary-image-bytes")
}
