package userRoutes

import (
	userProfileController "edutok/controllers/userControllers"
	"edutok/middleware"
	userProfileValidator "edutok/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {
	profileGroup := app.Group("/profile")

	profileGroup.Get("/me", middleware.JWTMiddleware, userProfileController.GetProfile)
	profileGroup.Patch("/me", userProfileValidator.UpdateProfile(), middleware.JWTMiddleware, userProfileController.UpdateProfile)
	profileGroup.Post("/become/creator", middleware.JWTMiddleware, userProfileController.BecomeCreator)
	profileGroup.Get("/me/videos", middleware.JWTMiddleware, userProfileController.MyVideos)
	profileGroup.Get("/me/courses", middleware.JWTMiddleware, userProfileController.MyCourses)
}
