package followRoutes

import (
	followControllers "edutok/controllers/follow"
	"edutok/middleware"
	followValidators "edutok/validators/follow"

	"github.com/gofiber/fiber/v2"
)

func SetupFollowRoutes(app *fiber.App) {
	followGroup := app.Group("/follows")

	followGroup.Post("/", followValidators.Follow(), middleware.JWTMiddleware, followControllers.Follow)
	followGroup.Delete("/", followValidators.Follow(), middleware.JWTMiddleware, followControllers.Unfollow)
	followGroup.Get("/followers", middleware.JWTMiddleware, followControllers.Followers)
	followGroup.Get("/following", middleware.JWTMiddleware, followControllers.Following)
}
