package quizController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RecordAttempt stores a graded submission. Each user gets one attempt per
// quiz; the per-course rollup is updated in the same transaction.
func RecordAttempt(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	reqData, ok := c.Locals("validatedAttempt").(*struct {
		Score int `json:"score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var quiz content.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var existing content.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userId, quiz.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz already attempted!", nil)
	}

	var attempt content.QuizAttempt
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		attempt = content.QuizAttempt{
			UserID: userId,
			QuizID: quiz.ID,
			Score:  reqData.Score,
		}
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}

		if quiz.CourseID == nil {
			return nil
		}

		var stats content.UserQuizStats
		err := tx.Where("user_id = ? AND course_id = ?", userId, *quiz.CourseID).
			First(&stats).Error
		if err != nil {
			stats = content.UserQuizStats{
				UserID:        userId,
				CourseID:      *quiz.CourseID,
				TotalAttempts: 1,
				AvgScore:      float64(reqData.Score),
			}
			return tx.Create(&stats).Error
		}

		total := stats.TotalAttempts + 1
		stats.AvgScore = (stats.AvgScore*float64(stats.TotalAttempts) + float64(reqData.Score)) / float64(total)
		stats.TotalAttempts = total
		return tx.Save(&stats).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			// A concurrent attempt hit the unique index
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Quiz already attempted!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Attempt recorded.", attempt)
}

// GetMyAttempt returns the acting user's attempt on a quiz, if any
func GetMyAttempt(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	var attempt content.QuizAttempt
	if err := database.Database.Db.Where("user_id = ? AND quiz_id = ?", userId, quizID).
		First(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Attempt not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempt fetched successfully.", attempt)
}

// GetCourseStats returns the acting user's rollup for a course
func GetCourseStats(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("course_id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course content.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var stats content.UserQuizStats
	if err := database.Database.Db.Where("user_id = ? AND course_id = ?", userId, course.ID).
		First(&stats).Error; err != nil {
		stats = content.UserQuizStats{UserID: userId, CourseID: course.ID}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course stats fetched successfully.", stats)
}
