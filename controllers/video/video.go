package videoController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadOwnedVideo resolves the video and enforces the ownership rule
func loadOwnedVideo(userId uint, videoID int) (*content.Video, int, string) {
	var video content.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).
		First(&video).Error; err != nil {
		return nil, fiber.StatusNotFound, "Video not found!"
	}

	if video.CreatorID != userId {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).
			First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			return nil, fiber.StatusForbidden, "You do not own this video!"
		}
	}

	return &video, 0, ""
}

// CreateVideo registers an uploaded clip. The storage key comes from the
// presign flow; course/chapter attachments must belong to the acting creator.
func CreateVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVideo").(*struct {
		Title           string `json:"title"`
		Description     string `json:"description"`
		StorageKey      string `json:"storageKey"`
		ThumbnailURL    string `json:"thumbnailUrl"`
		DurationSeconds int    `json:"durationSeconds"`
		CourseID        *uint  `json:"courseId"`
		ChapterID       *uint  `json:"chapterId"`
		CategoryID      *uint  `json:"categoryId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.CategoryID != nil {
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CategoryID, false).
			First(&models.Category{}).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
		}
	}

	if reqData.CourseID != nil {
		var course content.Course
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", *reqData.CourseID, false).
			First(&course).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		if course.CreatorID != userId {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not own this course!", nil)
		}
	}

	if reqData.ChapterID != nil {
		if reqData.CourseID == nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Chapter attachment requires a course!", nil)
		}
		var chapter content.Chapter
		if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
			*reqData.ChapterID, *reqData.CourseID, false).First(&chapter).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
		}
	}

	video := content.Video{
		Title:           reqData.Title,
		Description:     reqData.Description,
		StorageKey:      reqData.StorageKey,
		ThumbnailURL:    reqData.ThumbnailURL,
		DurationSeconds: reqData.DurationSeconds,
		CreatorID:       userId,
		CourseID:        reqData.CourseID,
		ChapterID:       reqData.ChapterID,
		CategoryID:      reqData.CategoryID,
	}

	if err := database.Database.Db.Create(&video).Error; err != nil {
		log.Printf("Error creating video: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video created successfully.", video)
}

// GetVideo returns a single published video (owners see drafts too)
func GetVideo(c *fiber.Ctx) error {
	userId, _ := c.Locals("userId").(uint)

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	var video content.Video
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", videoID, false).
		First(&video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	if !video.IsPublished && video.CreatorID != userId {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video fetched successfully.", video)
}

// UpdateVideo edits metadata of an owned video
func UpdateVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	video, status, msg := loadOwnedVideo(userId, videoID)
	if video == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData := new(struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnailUrl"`
		Published    *bool  `json:"published"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.Title != "" {
		video.Title = reqData.Title
	}
	if reqData.Description != "" {
		video.Description = reqData.Description
	}
	if reqData.ThumbnailURL != "" {
		video.ThumbnailURL = reqData.ThumbnailURL
	}
	if reqData.Published != nil {
		video.IsPublished = *reqData.Published
	}

	if err := database.Database.Db.Save(video).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video updated successfully.", video)
}

// DeleteVideo soft-deletes an owned video and any quiz attached to it
func DeleteVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	video, status, msg := loadOwnedVideo(userId, videoID)
	if video == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&content.Quiz{}).
			Where("video_id = ?", video.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		video.IsDeleted = true
		return tx.Save(video).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Video deleted successfully.", nil)
}
