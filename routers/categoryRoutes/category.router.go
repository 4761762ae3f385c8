package categoryRoutes

import (
	categoryControllers "edutok/controllers/category"
	userProfileController "edutok/controllers/userControllers"
	"edutok/middleware"
	"edutok/models"
	categoryValidators "edutok/validators/category"
	userProfileValidator "edutok/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories")

	categoryGroup.Get("/", categoryControllers.ListCategories)
	categoryGroup.Post("/", categoryValidators.CreateCategory(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin), categoryControllers.CreateCategory)
	categoryGroup.Get("/prefs", middleware.JWTMiddleware, userProfileController.GetPreferences)
	categoryGroup.Put("/prefs", userProfileValidator.SetPreferences(), middleware.JWTMiddleware, userProfileController.SetPreferences)
}
