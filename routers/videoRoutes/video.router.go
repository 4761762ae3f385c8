package videoRoutes

import (
	userProfileController "edutok/controllers/userControllers"
	videoControllers "edutok/controllers/video"
	"edutok/middleware"
	"edutok/models"
	videoValidators "edutok/validators/video"

	"github.com/gofiber/fiber/v2"
)

func SetupVideoRoutes(app *fiber.App) {
	videoGroup := app.Group("/videos")

	videoGroup.Get("/feed", middleware.JWTMiddleware, videoControllers.GetFeed)
	videoGroup.Get("/saved", middleware.JWTMiddleware, userProfileController.SavedVideos)
	videoGroup.Get("/favorites", middleware.JWTMiddleware, userProfileController.FavoriteVideos)
	videoGroup.Get("/mine", middleware.JWTMiddleware, userProfileController.MyVideos)

	videoGroup.Post("/", videoValidators.CreateVideo(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), videoControllers.CreateVideo)
	videoGroup.Get("/:id", middleware.JWTMiddleware, videoControllers.GetVideo)
	videoGroup.Patch("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), videoControllers.UpdateVideo)
	videoGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), videoControllers.DeleteVideo)

	videoGroup.Post("/:id/watch", middleware.JWTMiddleware, videoControllers.WatchVideo)
	videoGroup.Post("/:id/like", middleware.JWTMiddleware, videoControllers.LikeVideo)
	videoGroup.Delete("/:id/like", middleware.JWTMiddleware, videoControllers.UnlikeVideo)
	videoGroup.Post("/:id/save", middleware.JWTMiddleware, videoControllers.SaveVideo)
	videoGroup.Delete("/:id/save", middleware.JWTMiddleware, videoControllers.UnsaveVideo)

	videoGroup.Post("/:id/comments", videoValidators.AddComment(), middleware.JWTMiddleware, videoControllers.AddComment)
	videoGroup.Get("/:id/comments", videoControllers.ListComments)
	videoGroup.Delete("/comments/:comment_id", middleware.JWTMiddleware, videoControllers.DeleteComment)
}
