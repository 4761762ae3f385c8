package quizRoutes

import (
	quizControllers "edutok/controllers/quiz"
	"edutok/middleware"
	"edutok/models"
	quizValidators "edutok/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App) {
	quizGroup := app.Group("/quizzes")

	quizGroup.Post("/", quizValidators.CreateQuiz(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), quizControllers.CreateQuiz)
	quizGroup.Get("/:id", middleware.JWTMiddleware, quizControllers.GetQuiz)
	quizGroup.Patch("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), quizControllers.UpdateQuiz)
	quizGroup.Delete("/:id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), quizControllers.DeleteQuiz)

	quizGroup.Post("/:id/questions", quizValidators.AddQuestion(), middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), quizControllers.AddQuestion)
	quizGroup.Delete("/:id/questions/:question_id", middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleCreator), quizControllers.DeleteQuestion)

	quizGroup.Post("/:id/attempts", quizValidators.RecordAttempt(), middleware.JWTMiddleware, quizControllers.RecordAttempt)
	quizGroup.Get("/:id/attempts/me", middleware.JWTMiddleware, quizControllers.GetMyAttempt)

	statsGroup := app.Group("/stats")
	statsGroup.Get("/courses/:course_id", middleware.JWTMiddleware, quizControllers.GetCourseStats)
}
