package userController_test

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
	categoryRoutes "edutok/routers/categoryRoutes"
	userRoutes "edutok/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	userRoutes.SetupUserRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
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

func createCategory(t *testing.T, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, database.Database.Db.Create(&category).Error)
	return category
}

func doAuthed(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestSetPreferencesReplacesWholeSet(t *testing.T) {
	app := setupApp(t)

	user, token := createUser(t, "prefs@example.com", models.RoleLearner)
	math := createCategory(t, "Mathematics")
	physics := createCategory(t, "Physics")
	history := createCategory(t, "History")

	status, _ := doAuthed(t, app, http.MethodPut, "/categories/prefs", token,
		fiber.Map{"categoryIds": []uint{math.ID, physics.ID}})
	require.Equal(t, http.StatusOK, status)

	var count int64
	database.Database.Db.Model(&models.CategoryPreference{}).Where("user_id = ?", user.ID).Count(&count)
	require.EqualValues(t, 2, count)

	// The second call replaces the set instead of appending
	status, _ = doAuthed(t, app, http.MethodPut, "/categories/prefs", token,
		fiber.Map{"categoryIds": []uint{history.ID}})
	require.Equal(t, http.StatusOK, status)

	var prefs []models.CategoryPreference
	database.Database.Db.Where("user_id = ?", user.ID).Find(&prefs)
	require.Len(t, prefs, 1)
	require.Equal(t, history.ID, prefs[0].CategoryID)
}

func TestSetPreferencesUnknownCategory(t *testing.T) {
	app := setupApp(t)

	user, token := createUser(t, "unknowncat@example.com", models.RoleLearner)
	math := createCategory(t, "Mathematics")

	status, _ := doAuthed(t, app, http.MethodPut, "/categories/prefs", token,
		fiber.Map{"categoryIds": []uint{math.ID, 9999}})
	require.Equal(t, http.StatusNotFound, status)

	// The failed call must not touch existing state
	var count int64
	database.Database.Db.Model(&models.CategoryPreference{}).Where("user_id = ?", user.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestSetPreferencesRejectsEmptyAndDuplicates(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "badprefs@example.com", models.RoleLearner)
	math := createCategory(t, "Mathematics")

	status, _ := doAuthed(t, app, http.MethodPut, "/categories/prefs", token,
		fiber.Map{"categoryIds": []uint{}})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doAuthed(t, app, http.MethodPut, "/categories/prefs", token,
		fiber.Map{"categoryIds": []uint{math.ID, math.ID}})
	require.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestBecomeCreator(t *testing.T) {
	app := setupApp(t)

	user, token := createUser(t, "upgrade@example.com", models.RoleLearner)

	status, _ := doAuthed(t, app, http.MethodPost, "/profile/become/creator", token, nil)
	require.Equal(t, http.StatusOK, status)

	var reloaded models.User
	require.NoError(t, database.Database.Db.First(&reloaded, user.ID).Error)
	require.Equal(t, models.RoleCreator, reloaded.Role)

	// Upgrading twice is rejected
	status, _ = doAuthed(t, app, http.MethodPost, "/profile/become/creator", token, nil)
	require.Equal(t, http.StatusBadRequest, status)
}

func TestCreateCategoryRequiresAdmin(t *testing.T) {
	app := setupApp(t)

	_, learnerToken := createUser(t, "learner@example.com", models.RoleLearner)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	status, _ := doAuthed(t, app, http.MethodPost, "/categories/", learnerToken,
		fiber.Map{"name": "Chemistry"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doAuthed(t, app, http.MethodPost, "/categories/", adminToken,
		fiber.Map{"name": "Chemistry"})
	require.Equal(t, http.StatusCreated, status)

	// Duplicate category names are a conflict
	status, _ = doAuthed(t, app, http.MethodPost, "/categories/", adminToken,
		fiber.Map{"name": "Chemistry"})
	require.Equal(t, http.StatusConflict, status)
}
