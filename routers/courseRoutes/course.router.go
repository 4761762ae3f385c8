package courseRoutes

import (
	courseControllers "edutok/controllers/course"
	"edutok/middleware"
	"edutok/models"
	courseValidators "edutok/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	courseGroup.Get("/", courseValidators.CourseList(), courseControllers.GetAllCourses)
	courseGroup.Get("/:id", courseControllers.GetCourseDetails)

	courseGroup.Post("/", courseValidators.CreateCourse(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.CreateCourse)
	courseGroup.Patch("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.UpdateCourse)
	courseGroup.Patch("/:id/publish", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.PublishCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.DeleteCourse)

	courseGroup.Post("/:id/chapters", courseValidators.AddChapter(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.AddChapter)
	courseGroup.Patch("/:id/chapters/:chapter_id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.UpdateChapter)
	courseGroup.Delete("/:id/chapters/:chapter_id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), courseControllers.DeleteChapter)
}
