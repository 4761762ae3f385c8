package main

import (
	"log"

	"edutok/config"
	"edutok/database"
	authRoutes "edutok/routers/authRoutes"
	categoryRoutes "edutok/routers/categoryRoutes"
	courseRoutes "edutok/routers/courseRoutes"
	followRoutes "edutok/routers/followRoutes"
	quizRoutes "edutok/routers/quizRoutes"
	uploadRoutes "edutok/routers/uploadRoutes"
	userRoutes "edutok/routers/userRoutes"
	videoRoutes "edutok/routers/videoRoutes"
	"edutok/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	if err := utils.InitStorage(); err != nil {
		// Presign requests will retry; the rest of the API works without S3
		log.Printf("Warning: storage init failed: %v", err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	followRoutes.SetupFollowRoutes(app)
	categoryRoutes.SetupCategoryRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	videoRoutes.SetupVideoRoutes(app)
	quizRoutes.SetupQuizRoutes(app)
	uploadRoutes.SetupUploadRoutes(app)

	utils.InitializeSchedulers()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
