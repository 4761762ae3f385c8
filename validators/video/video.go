package videoValidator

import (
	"strings"

	"edutok/middleware"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
)

// CreateVideo validator middleware. The duration ceiling is the product rule:
// clips longer than content.MaxVideoDurationSec never enter the catalog.
func CreateVideo() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title"`
			Description     string `json:"description"`
			StorageKey      string `json:"storageKey"`
			ThumbnailURL    string `json:"thumbnailUrl"`
			DurationSeconds int    `json:"durationSeconds"`
			CourseID        *uint  `json:"courseId"`
			ChapterID       *uint  `json:"chapterId"`
			CategoryID      *uint  `json:"categoryId"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if len(reqData.Title) > 200 {
			errors["title"] = "Title must be at most 200 characters!"
		}

		if strings.TrimSpace(reqData.StorageKey) == "" {
			errors["storageKey"] = "Storage key is required!"
		}

		if reqData.DurationSeconds < 1 {
			errors["durationSeconds"] = "Duration is required!"
		} else if reqData.DurationSeconds > content.MaxVideoDurationSec {
			errors["durationSeconds"] = "Videos are limited to 90 seconds!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVideo", reqData)
		return c.Next()
	}
}

// AddComment validator middleware
func AddComment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text string `json:"text"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Comment text is required!"
		} else if len(reqData.Text) > content.MaxCommentLen {
			errors["text"] = "Comment must be at most 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}
