package followController_test

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
	followRoutes "edutok/routers/followRoutes"

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
	followRoutes.SetupFollowRoutes(app)
	return app
}

func createUser(t *testing.T, email string) (models.User, string) {
	t.Helper()

	user := models.User{
		Name:            "Test " + email,
		Email:           email,
		IsEmailVerified: true,
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
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
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

func TestFollowLifecycle(t *testing.T) {
	app := setupApp(t)

	alex, alexToken := createUser(t, "alex@example.com")
	_ = alex
	blake, _ := createUser(t, "blake@example.com")

	status, _ := doAuthed(t, app, http.MethodPost, "/follows/", alexToken, fiber.Map{"userId": blake.ID})
	require.Equal(t, http.StatusCreated, status)

	// A second follow of the same user is a conflict
	status, _ = doAuthed(t, app, http.MethodPost, "/follows/", alexToken, fiber.Map{"userId": blake.ID})
	require.Equal(t, http.StatusConflict, status)

	status, _ = doAuthed(t, app, http.MethodDelete, "/follows/", alexToken, fiber.Map{"userId": blake.ID})
	require.Equal(t, http.StatusOK, status)

	// The edge is gone for real, so following again succeeds
	status, _ = doAuthed(t, app, http.MethodPost, "/follows/", alexToken, fiber.Map{"userId": blake.ID})
	require.Equal(t, http.StatusCreated, status)
}

func TestFollowSelfRejected(t *testing.T) {
	app := setupApp(t)

	user, token := createUser(t, "selfie@example.com")

	status, _ := doAuthed(t, app, http.MethodPost, "/follows/", token, fiber.Map{"userId": user.ID})
	require.Equal(t, http.StatusBadRequest, status)
}

func TestFollowMissingUser(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "lonely@example.com")

	status, _ := doAuthed(t, app, http.MethodPost, "/follows/", token, fiber.Map{"userId": 9999})
	require.Equal(t, http.StatusNotFound, status)
}

func TestUnfollowWithoutEdge(t *testing.T) {
	app := setupApp(t)

	_, token := createUser(t, "nofollow@example.com")
	other, _ := createUser(t, "other@example.com")

	status, _ := doAuthed(t, app, http.MethodDelete, "/follows/", token, fiber.Map{"userId": other.ID})
	require.Equal(t, http.StatusNotFound, status)
}

func TestFollowerAndFollowingLists(t *testing.T) {
	app := setupApp(t)

	_, aToken := createUser(t, "a@example.com")
	b, bToken := createUser(t, "b@example.com")
	c, _ := createUser(t, "c@example.com")

	status, _ := doAuthed(t, app, http.MethodPost, "/follows/", aToken, fiber.Map{"userId": b.ID})
	require.Equal(t, http.StatusCreated, status)
	status, _ = doAuthed(t, app, http.MethodPost, "/follows/", aToken, fiber.Map{"userId": c.ID})
	require.Equal(t, http.StatusCreated, status)

	status, payload := doAuthed(t, app, http.MethodGet, "/follows/following", aToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	require.Len(t, data["users"], 2)

	status, payload = doAuthed(t, app, http.MethodGet, "/follows/followers", bToken, nil)
	require.Equal(t, http.StatusOK, status)
	data = payload["data"].(map[string]interface{})
	require.Len(t, data["users"], 1)
}
