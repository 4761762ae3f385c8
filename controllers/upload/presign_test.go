package uploadController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"edutok/config"
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	uploadRoutes "edutok/routers/uploadRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	// Static dummy credentials are enough: presigning is an offline signature
	config.AppConfig.S3AccessKey = "AKIDEXAMPLE"
	config.AppConfig.S3SecretKey = "secretExample"
	config.AppConfig.S3Bucket = "edutok-media-test"

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	uploadRoutes.SetupUploadRoutes(app)
	return app
}

func createUser(t *testing.T, email, role string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:            "Test " + email,
		Email:           email,
		Role:            role,
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func doAuthed(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestPresignIssuesCredential(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "creator@example.com", models.RoleCreator)

	status, payload := doAuthed(t, app, http.MethodPost, "/uploads/presign", token, fiber.Map{
		"kind":        "video",
		"fileName":    "My Lesson Clip.mp4",
		"contentType": "video/mp4",
		"sizeBytes":   1024 * 1024,
	})
	require.Equal(t, http.StatusOK, status)

	data := payload["data"].(map[string]interface{})
	url := data["url"].(string)
	require.Contains(t, url, "edutok-media-test")
	require.Contains(t, url, "X-Amz-Signature")

	key := data["storageKey"].(string)
	require.True(t, strings.HasPrefix(key, "video/"))
	require.True(t, strings.HasSuffix(key, "_My-Lesson-Clip.mp4"))
}

func TestPresignRejectsKindContentTypeMismatch(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "creator2@example.com", models.RoleCreator)

	status, _ := doAuthed(t, app, http.MethodPost, "/uploads/presign", token, fiber.Map{
		"kind":        "video",
		"fileName":    "sneaky.png",
		"contentType": "image/png",
		"sizeBytes":   1024,
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestPresignRejectsUnknownKind(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "creator3@example.com", models.RoleCreator)

	status, _ := doAuthed(t, app, http.MethodPost, "/uploads/presign", token, fiber.Map{
		"kind":        "archive",
		"fileName":    "backup.zip",
		"contentType": "application/zip",
		"sizeBytes":   1024,
	})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestPresignRejectsOversizedFile(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "creator4@example.com", models.RoleCreator)
	config.AppConfig.UploadMaxBytes = 1024

	status, _ := doAuthed(t, app, http.MethodPost, "/uploads/presign", token, fiber.Map{
		"kind":        "video",
		"fileName":    "huge.mp4",
		"contentType": "video/mp4",
		"sizeBytes":   4096,
	})
	require.Equal(t, http.StatusBadRequest, status)
}
