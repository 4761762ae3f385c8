package quizValidator

import (
	"strings"

	"edutok/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateQuiz validator middleware. A quiz attaches to at most one of video,
// chapter or course.
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title     string `json:"title"`
			VideoID   *uint  `json:"videoId"`
			ChapterID *uint  `json:"chapterId"`
			CourseID  *uint  `json:"courseId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		attachments := 0
		if reqData.VideoID != nil {
			attachments++
		}
		if reqData.ChapterID != nil {
			attachments++
		}
		if reqData.CourseID != nil {
			attachments++
		}
		if attachments > 1 {
			errors["attachment"] = "A quiz can attach to only one of video, chapter or course!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

// AddQuestion validator middleware
func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text       string `json:"text"`
			OrderIndex int    `json:"orderIndex"`
			Answers    []struct {
				Text      string `json:"text"`
				IsCorrect bool   `json:"isCorrect"`
			} `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Question text is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["orderIndex"] = "Order index must not be negative!"
		}

		if len(reqData.Answers) < 2 {
			errors["answers"] = "At least two answers are required!"
		} else {
			correct := 0
			for _, a := range reqData.Answers {
				if strings.TrimSpace(a.Text) == "" {
					errors["answers"] = "Answer text is required!"
					break
				}
				if a.IsCorrect {
					correct++
				}
			}
			if correct == 0 && errors["answers"] == "" {
				errors["answers"] = "At least one answer must be marked correct!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

// RecordAttempt validator middleware
func RecordAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score int `json:"score"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Score < 0 || reqData.Score > 100 {
			errors["score"] = "Score must be between 0 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAttempt", reqData)
		return c.Next()
	}
}
