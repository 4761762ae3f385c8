package userValidator

import (
	"strings"

	"edutok/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetPreferences validator middleware
func SetPreferences() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CategoryIDs []uint `json:"categoryIds"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.CategoryIDs) == 0 {
			errors["categoryIds"] = "At least one category is required!"
		}
		seen := make(map[uint]bool, len(reqData.CategoryIDs))
		for _, id := range reqData.CategoryIDs {
			if id == 0 {
				errors["categoryIds"] = "Category ids must be positive!"
				break
			}
			if seen[id] {
				errors["categoryIds"] = "Duplicate category ids are not allowed!"
				break
			}
			seen[id] = true
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPreferences", reqData)
		return c.Next()
	}
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name         string `json:"name"`
			Bio          string `json:"bio"`
			ProfileImage string `json:"profileImage"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != "" && len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}
		if len(reqData.Bio) > 500 {
			errors["bio"] = "Bio must be at most 500 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
