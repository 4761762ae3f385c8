package quizController_test

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
	quizRoutes "edutok/routers/quizRoutes"

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
	quizRoutes.SetupQuizRoutes(app)
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

func createCourse(t *testing.T, creatorID uint) content.Course {
	t.Helper()
	course := content.Course{Title: "Algebra Basics", CreatorID: creatorID, IsPublished: true}
	require.NoError(t, database.Database.Db.Create(&course).Error)
	return course
}

func createQuiz(t *testing.T, creatorID uint, courseID *uint) content.Quiz {
	t.Helper()
	quiz := content.Quiz{Title: "Checkpoint", CreatorID: creatorID, CourseID: courseID}
	require.NoError(t, database.Database.Db.Create(&quiz).Error)
	return quiz
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

func TestRecordAttemptOncePerQuiz(t *testing.T) {
	app := setupApp(t)

	creator, _ := createUser(t, "creator@example.com", models.RoleCreator)
	_, learnerToken := createUser(t, "learner@example.com", models.RoleLearner)

	course := createCourse(t, creator.ID)
	quiz := createQuiz(t, creator.ID, &course.ID)

	path := fmt.Sprintf("/quizzes/%d/attempts", quiz.ID)

	status, _ := doAuthed(t, app, http.MethodPost, path, learnerToken, fiber.Map{"score": 85})
	require.Equal(t, http.StatusCreated, status)

	// The second attempt on the same quiz is a conflict
	status, _ = doAuthed(t, app, http.MethodPost, path, learnerToken, fiber.Map{"score": 100})
	require.Equal(t, http.StatusConflict, status)

	var count int64
	database.Database.Db.Model(&content.QuizAttempt{}).Where("quiz_id = ?", quiz.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestAttemptUpdatesCourseRollup(t *testing.T) {
	app := setupApp(t)

	creator, _ := createUser(t, "creator2@example.com", models.RoleCreator)
	learner, learnerToken := createUser(t, "learner2@example.com", models.RoleLearner)

	course := createCourse(t, creator.ID)
	first := createQuiz(t, creator.ID, &course.ID)
	second := createQuiz(t, creator.ID, &course.ID)

	status, _ := doAuthed(t, app, http.MethodPost,
		fmt.Sprintf("/quizzes/%d/attempts", first.ID), learnerToken, fiber.Map{"score": 80})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doAuthed(t, app, http.MethodPost,
		fmt.Sprintf("/quizzes/%d/attempts", second.ID), learnerToken, fiber.Map{"score": 100})
	require.Equal(t, http.StatusCreated, status)

	var stats content.UserQuizStats
	require.NoError(t, database.Database.Db.
		Where("user_id = ? AND course_id = ?", learner.ID, course.ID).First(&stats).Error)
	require.EqualValues(t, 2, stats.TotalAttempts)
	require.InDelta(t, 90.0, stats.AvgScore, 0.001)

	status, payload := doAuthed(t, app, http.MethodGet,
		fmt.Sprintf("/stats/courses/%d", course.ID), learnerToken, nil)
	require.Equal(t, http.StatusOK, status)
	data := payload["data"].(map[string]interface{})
	require.InDelta(t, 90.0, data["avg_score"].(float64), 0.001)
}

func TestAttemptWithoutCourseSkipsRollup(t *testing.T) {
	app := setupApp(t)

	creator, _ := createUser(t, "creator3@example.com", models.RoleCreator)
	learner, learnerToken := createUser(t, "learner3@example.com", models.RoleLearner)

	quiz := createQuiz(t, creator.ID, nil)

	status, _ := doAuthed(t, app, http.MethodPost,
		fmt.Sprintf("/quizzes/%d/attempts", quiz.ID), learnerToken, fiber.Map{"score": 70})
	require.Equal(t, http.StatusCreated, status)

	var count int64
	database.Database.Db.Model(&content.UserQuizStats{}).Where("user_id = ?", learner.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestAttemptRejectsOutOfRangeScore(t *testing.T) {
	app := setupApp(t)

	creator, _ := createUser(t, "creator4@example.com", models.RoleCreator)
	_, learnerToken := createUser(t, "learner4@example.com", models.RoleLearner)

	quiz := createQuiz(t, creator.ID, nil)
	path := fmt.Sprintf("/quizzes/%d/attempts", quiz.ID)

	status, _ := doAuthed(t, app, http.MethodPost, path, learnerToken, fiber.Map{"score": 101})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doAuthed(t, app, http.MethodPost, path, learnerToken, fiber.Map{"score": -1})
	require.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestGetQuizHidesCorrectAnswersFromLearners(t *testing.T) {
	app := setupApp(t)

	creator, creatorToken := createUser(t, "creator5@example.com", models.RoleCreator)
	_, learnerToken := createUser(t, "learner5@example.com", models.RoleLearner)

	quiz := createQuiz(t, creator.ID, nil)

	status, _ := doAuthed(t, app, http.MethodPost,
		fmt.Sprintf("/quizzes/%d/questions", quiz.ID), creatorToken, fiber.Map{
			"text": "What is 2 + 2?",
			"answers": []fiber.Map{
				{"text": "3", "isCorrect": false},
				{"text": "4", "isCorrect": true},
			},
		})
	require.Equal(t, http.StatusCreated, status)

	assertCorrectFlags := func(token string, wantVisible bool) {
		status, payload := doAuthed(t, app, http.MethodGet,
			fmt.Sprintf("/quizzes/%d", quiz.ID), token, nil)
		require.Equal(t, http.StatusOK, status)

		data := payload["data"].(map[string]interface{})
		questions := data["questions"].([]interface{})
		require.Len(t, questions, 1)

		answers := questions[0].(map[string]interface{})["answers"].([]interface{})
		require.Len(t, answers, 2)

		anyCorrect := false
		for _, a := range answers {
			if a.(map[string]interface{})["is_correct"].(bool) {
				anyCorrect = true
			}
		}
		require.Equal(t, wantVisible, anyCorrect)
	}

	assertCorrectFlags(creatorToken, true)
	assertCorrectFlags(learnerToken, false)
}

func TestCreateQuizOwnershipAndAttachment(t *testing.T) {
	app := setupApp(t)

	creator, creatorToken := createUser(t, "creator6@example.com", models.RoleCreator)
	other, otherToken := createUser(t, "creator7@example.com", models.RoleCreator)
	_ = other

	course := createCourse(t, creator.ID)

	// Attaching to someone else's course is forbidden
	status, _ := doAuthed(t, app, http.MethodPost, "/quizzes/", otherToken,
		fiber.Map{"title": "Stolen quiz", "courseId": course.ID})
	require.Equal(t, http.StatusForbidden, status)

	// More than one attachment is a validation error
	status, _ = doAuthed(t, app, http.MethodPost, "/quizzes/", creatorToken,
		fiber.Map{"title": "Overattached", "courseId": course.ID, "videoId": 1})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, _ = doAuthed(t, app, http.MethodPost, "/quizzes/", creatorToken,
		fiber.Map{"title": "Course checkpoint", "courseId": course.ID})
	require.Equal(t, http.StatusCreated, status)
}
