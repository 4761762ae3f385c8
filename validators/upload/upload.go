package uploadValidator

import (
	"strings"

	"edutok/middleware"

	"github.com/gofiber/fiber/v2"
)

// Presign validator middleware
func Presign() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Kind        string `json:"kind"`
			FileName    string `json:"fileName"`
			ContentType string `json:"contentType"`
			SizeBytes   int64  `json:"sizeBytes"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Kind) == "" {
			errors["kind"] = "Upload kind is required!"
		}
		if strings.TrimSpace(reqData.FileName) == "" {
			errors["fileName"] = "File name is required!"
		}
		if strings.TrimSpace(reqData.ContentType) == "" {
			errors["contentType"] = "Content type is required!"
		}
		if reqData.SizeBytes < 1 {
			errors["sizeBytes"] = "File size is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPresign", reqData)
		return c.Next()
	}
}
