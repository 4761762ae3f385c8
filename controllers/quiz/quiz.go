package quizController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadOwnedQuiz resolves the quiz and enforces the ownership rule
func loadOwnedQuiz(userId uint, quizID int) (*content.Quiz, int, string) {
	var quiz content.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return nil, fiber.StatusNotFound, "Quiz not found!"
	}

	if quiz.CreatorID != userId {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).
			First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			return nil, fiber.StatusForbidden, "You do not own this quiz!"
		}
	}

	return &quiz, 0, ""
}

// CreateQuiz creates a quiz attached to at most one of video, chapter or
// course, all of which must belong to the acting creator.
func CreateQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*struct {
		Title     string `json:"title"`
		VideoID   *uint  `json:"videoId"`
		ChapterID *uint  `json:"chapterId"`
		CourseID  *uint  `json:"courseId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.VideoID != nil {
		var video content.Video
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.VideoID, false).
			First(&video).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
		}
		if video.CreatorID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this video!", nil)
		}
	}

	if reqData.ChapterID != nil {
		var chapter content.Chapter
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.ChapterID, false).
			First(&chapter).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
		var course content.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", chapter.CourseID, false).
			First(&course).Error; err != nil || course.CreatorID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this chapter!", nil)
		}
	}

	if reqData.CourseID != nil {
		var course content.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).
			First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if course.CreatorID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
		}
	}

	quiz := content.Quiz{
		Title:     reqData.Title,
		CreatorID: userId,
		VideoID:   reqData.VideoID,
		ChapterID: reqData.ChapterID,
		CourseID:  reqData.CourseID,
	}

	if err := database.Database.Db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully.", quiz)
}

// GetQuiz returns a quiz with questions and answers. Correct-answer flags are
// hidden from everyone but the owner.
func GetQuiz(c *fiber.Ctx) error {
	userId, _ := c.Locals("userId").(uint)

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	var quiz content.Quiz
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", quizID, false).
		First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	var questions []content.Question
	database.Database.Db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).
		Order("order_index asc").Find(&questions)

	type QuestionWithAnswers struct {
		content.Question
		Answers []content.Answer `json:"answers"`
	}

	isOwner := quiz.CreatorID == userId

	result := make([]QuestionWithAnswers, len(questions))
	for i, question := range questions {
		result[i] = QuestionWithAnswers{Question: question}

		var answers []content.Answer
		database.Database.Db.Where("question_id = ? AND is_deleted = ?", question.ID, false).
			Order("order_index asc").Find(&answers)

		if !isOwner {
			for j := range answers {
				answers[j].IsCorrect = false
			}
		}
		result[i].Answers = answers
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", fiber.Map{
		"quiz":      quiz,
		"questions": result,
	})
}

// UpdateQuiz edits the quiz title
func UpdateQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	quiz, status, msg := loadOwnedQuiz(userId, quizID)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData := new(struct {
		Title string `json:"title"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Title is required!", nil)
	}

	quiz.Title = reqData.Title
	if err := database.Database.Db.Save(quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully.", quiz)
}

// DeleteQuiz soft-deletes the quiz with its questions and answers
func DeleteQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	quiz, status, msg := loadOwnedQuiz(userId, quizID)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&content.Question{}).
			Where("quiz_id = ?", quiz.ID).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Model(&content.Answer{}).
				Where("question_id IN ?", questionIDs).Update("is_deleted", true).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&content.Question{}).
			Where("quiz_id = ?", quiz.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		quiz.IsDeleted = true
		return tx.Save(quiz).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully.", nil)
}

// AddQuestion appends a question with its answers to an owned quiz
func AddQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}

	quiz, status, msg := loadOwnedQuiz(userId, quizID)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Text       string `json:"text"`
		OrderIndex int    `json:"orderIndex"`
		Answers    []struct {
			Text      string `json:"text"`
			IsCorrect bool   `json:"isCorrect"`
		} `json:"answers"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var question content.Question
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		question = content.Question{
			QuizID:     quiz.ID,
			Text:       reqData.Text,
			OrderIndex: reqData.OrderIndex,
		}
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for i, a := range reqData.Answers {
			answer := content.Answer{
				QuestionID: question.ID,
				Text:       a.Text,
				IsCorrect:  a.IsCorrect,
				OrderIndex: i,
			}
			if err := tx.Create(&answer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully.", question)
}

// DeleteQuestion soft-deletes a question and its answers
func DeleteQuestion(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID, err := c.ParamsInt("id")
	if err != nil || quizID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz id!", nil)
	}
	questionID, err := c.ParamsInt("question_id")
	if err != nil || questionID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question id!", nil)
	}

	quiz, status, msg := loadOwnedQuiz(userId, quizID)
	if quiz == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var question content.Question
	if err := database.Database.Db.Where("id = ? AND quiz_id = ? AND is_deleted = ?",
		questionID, quiz.ID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&content.Answer{}).
			Where("question_id = ?", question.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		question.IsDeleted = true
		return tx.Save(&question).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully.", nil)
}
