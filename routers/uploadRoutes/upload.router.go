package uploadRoutes

import (
	uploadControllers "edutok/controllers/upload"
	"edutok/middleware"
	uploadValidators "edutok/validators/upload"

	"github.com/gofiber/fiber/v2"
)

func SetupUploadRoutes(app *fiber.App) {
	uploadGroup := app.Group("/uploads")

	// Avatar uploads are open to every signed-in user; the controller holds
	// the kind and size rules
	uploadGroup.Post("/presign", uploadValidators.Presign(), middleware.JWTMiddleware, uploadControllers.Presign)
}
