package courseController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourseList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	offset := (*reqData.Page - 1) * (*reqData.Limit)

	var courses []content.Course
	var total int64

	if err := database.Database.Db.Where("is_published = ? AND is_deleted = ?", true, false).
		Order("created_at desc").
		Offset(offset).
		Limit(*reqData.Limit).
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	database.Database.Db.Model(&content.Course{}).
		Where("is_published = ? AND is_deleted = ?", true, false).Count(&total)

	response := fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  *reqData.Page,
			"limit": *reqData.Limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course list fetched successfully.", response)
}

// GetCourseDetails returns a course with its ordered chapters and the videos
// attached to each chapter
func GetCourseDetails(c *fiber.Ctx) error {
	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var course content.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var chapters []content.Chapter
	database.Database.Db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&chapters)

	type ChapterWithVideos struct {
		content.Chapter
		Videos []content.Video `json:"videos"`
	}

	result := make([]ChapterWithVideos, len(chapters))
	for i, chapter := range chapters {
		result[i] = ChapterWithVideos{Chapter: chapter}

		var videos []content.Video
		database.Database.Db.Where("chapter_id = ? AND is_deleted = ? AND is_published = ?",
			chapter.ID, false, true).Order("created_at asc").Find(&videos)
		result[i].Videos = videos
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully.", fiber.Map{
		"course":   course,
		"chapters": result,
	})
}
