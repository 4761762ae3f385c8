package courseController_test

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
	"edutok/models/content"
	courseRoutes "edutok/routers/courseRoutes"

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
	courseRoutes.SetupCourseRoutes(app)
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

func TestCourseOwnershipEnforced(t *testing.T) {
	app := setupApp(t)

	_, ownerToken := createUser(t, "owner@example.com", models.RoleCreator)
	_, otherToken := createUser(t, "other@example.com", models.RoleCreator)
	_, adminToken := createUser(t, "admin@example.com", models.RoleAdmin)

	status, payload := doAuthed(t, app, http.MethodPost, "/courses/", ownerToken,
		fiber.Map{"title": "Linear Algebra", "description": "Vectors and spaces"})
	require.Equal(t, http.StatusCreated, status)

	courseID := uint(payload["data"].(map[string]interface{})["ID"].(float64))
	path := fmt.Sprintf("/courses/%d", courseID)

	// A different creator cannot edit the course, an admin can
	status, _ = doAuthed(t, app, http.MethodPatch, path, otherToken, fiber.Map{"title": "Hijacked"})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doAuthed(t, app, http.MethodPatch, path, adminToken, fiber.Map{"title": "Moderated title"})
	require.Equal(t, http.StatusOK, status)
}

func TestPublishedCoursesOnlyInListing(t *testing.T) {
	app := setupApp(t)

	creator, token := createUser(t, "creator@example.com", models.RoleCreator)

	status, payload := doAuthed(t, app, http.MethodPost, "/courses/", token,
		fiber.Map{"title": "Draft Course", "description": "Not ready yet"})
	require.Equal(t, http.StatusCreated, status)
	draftID := uint(payload["data"].(map[string]interface{})["ID"].(float64))

	published := content.Course{Title: "Live Course", CreatorID: creator.ID, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&published).Error)

	status, payload = doAuthed(t, app, http.MethodGet, "/courses/?page=1&limit=10", "", nil)
	require.Equal(t, http.StatusOK, status)

	courses := payload["data"].(map[string]interface{})["courses"].([]interface{})
	require.Len(t, courses, 1)
	require.Equal(t, "Live Course", courses[0].(map[string]interface{})["title"])

	// The draft detail page is hidden too
	status, _ = doAuthed(t, app, http.MethodGet, fmt.Sprintf("/courses/%d", draftID), "", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestDeleteCourseCascades(t *testing.T) {
	app := setupApp(t)

	creator, token := createUser(t, "cascade@example.com", models.RoleCreator)

	course := content.Course{Title: "Doomed Course", CreatorID: creator.ID, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	chapter := content.Chapter{CourseID: course.ID, Title: "Chapter One"}
	require.NoError(t, database.Database.Db.Create(&chapter).Error)

	video := content.Video{
		Title:           "Attached clip",
		StorageKey:      "video/2026/08/28/attached.mp4",
		DurationSeconds: 30,
		CreatorID:       creator.ID,
		CourseID:        &course.ID,
		ChapterID:       &chapter.ID,
		IsPublished:     true,
	}
	require.NoError(t, database.Database.Db.Create(&video).Error)

	quiz := content.Quiz{Title: "Course quiz", CreatorID: creator.ID, CourseID: &course.ID}
	require.NoError(t, database.Database.Db.Create(&quiz).Error)

	status, _ := doAuthed(t, app, http.MethodDelete, fmt.Sprintf("/courses/%d", course.ID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var reloadedChapter content.Chapter
	require.NoError(t, database.Database.Db.First(&reloadedChapter, chapter.ID).Error)
	require.True(t, reloadedChapter.IsDeleted)

	var reloadedQuiz content.Quiz
	require.NoError(t, database.Database.Db.First(&reloadedQuiz, quiz.ID).Error)
	require.True(t, reloadedQuiz.IsDeleted)

	// Videos survive, detached from the deleted course
	var reloadedVideo content.Video
	require.NoError(t, database.Database.Db.First(&reloadedVideo, video.ID).Error)
	require.False(t, reloadedVideo.IsDeleted)
	require.Nil(t, reloadedVideo.CourseID)
	require.Nil(t, reloadedVideo.ChapterID)
}

func TestChapterCrudOnOwnedCourse(t *testing.T) {
	app := setupApp(t)

	creator, token := createUser(t, "chapters@example.com", models.RoleCreator)

	course := content.Course{Title: "Chaptered Course", CreatorID: creator.ID}
	require.NoError(t, database.Database.Db.Create(&course).Error)

	status, payload := doAuthed(t, app, http.MethodPost,
		fmt.Sprintf("/courses/%d/chapters", course.ID), token,
		fiber.Map{"title": "Introduction", "orderIndex": 0})
	require.Equal(t, http.StatusCreated, status)
	chapterID := uint(payload["data"].(map[string]interface{})["ID"].(float64))

	status, _ = doAuthed(t, app, http.MethodPatch,
		fmt.Sprintf("/courses/%d/chapters/%d", course.ID, chapterID), token,
		fiber.Map{"title": "Introduction, revised"})
	require.Equal(t, http.StatusOK, status)

	status, _ = doAuthed(t, app, http.MethodDelete,
		fmt.Sprintf("/courses/%d/chapters/%d", course.ID, chapterID), token, nil)
	require.Equal(t, http.StatusOK, status)

	var reloaded content.Chapter
	require.NoError(t, database.Database.Db.First(&reloaded, chapterID).Error)
	require.True(t, reloaded.IsDeleted)
}
