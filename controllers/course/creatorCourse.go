package courseController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"
	"edutok/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadOwnedCourse resolves the course and enforces the ownership rule:
// the acting user must be the creator, or an admin.
func loadOwnedCourse(userId uint, courseID int) (*content.Course, int, string) {
	var course content.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).
		First(&course).Error; err != nil {
		return nil, fiber.StatusNotFound, "Course not found!"
	}

	if course.CreatorID != userId {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).
			First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			return nil, fiber.StatusForbidden, "You do not own this course!"
		}
	}

	return &course, 0, ""
}

// CreateCourse creates a draft course owned by the acting creator
func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnailUrl"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := content.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		ThumbnailURL: reqData.ThumbnailURL,
		CreatorID:    userId,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", course)
}

// UpdateCourse edits title/description/thumbnail of an owned course
func UpdateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData := new(struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		ThumbnailURL string `json:"thumbnailUrl"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.Title != "" {
		course.Title = reqData.Title
	}
	if reqData.Description != "" {
		course.Description = reqData.Description
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", course)
}

// PublishCourse flips the published flag of an owned course
func PublishCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData := new(struct {
		Published *bool `json:"published"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Published == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Published flag is required!", nil)
	}

	firstPublish := *reqData.Published && !course.IsPublished

	course.IsPublished = *reqData.Published
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	if firstPublish {
		go notifyFollowers(course.CreatorID, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course publish state updated.", course)
}

// notifyFollowers emails everyone following the creator about the new course
func notifyFollowers(creatorID uint, courseTitle string) {
	var creator models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", creatorID, false).
		First(&creator).Error; err != nil {
		return
	}

	var followerIDs []uint
	database.Database.Db.Model(&models.Follow{}).
		Where("followee_id = ?", creatorID).Pluck("follower_id", &followerIDs)
	if len(followerIDs) == 0 {
		return
	}

	var followers []models.User
	database.Database.Db.Select("name, email").
		Where("id IN ? AND is_deleted = ?", followerIDs, false).Find(&followers)

	for _, follower := range followers {
		utils.SendCoursePublishedEmail(follower.Email, follower.Name, creator.Name, courseTitle)
	}
}

// DeleteCourse soft-deletes an owned course. Chapters and attached quizzes go
// with it; videos survive as standalone feed entities, detached from the
// course. Everything runs in one transaction.
func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&content.Chapter{}).
			Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&content.Video{}).
			Where("course_id = ?", course.ID).
			Updates(map[string]interface{}{"course_id": nil, "chapter_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Model(&content.Quiz{}).
			Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		course.IsDeleted = true
		return tx.Save(course).Error
	})
	if err != nil {
		log.Printf("Error deleting course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}

// AddChapter appends a chapter to an owned course
func AddChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	reqData, ok := c.Locals("validatedChapter").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"orderIndex"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	chapter := content.Chapter{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		OrderIndex:  reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Chapter created successfully.", chapter)
}

// UpdateChapter edits a chapter of an owned course
func UpdateChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	chapterID, err := c.ParamsInt("chapter_id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var chapter content.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  *int   `json:"orderIndex"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	if reqData.Title != "" {
		chapter.Title = reqData.Title
	}
	if reqData.Description != "" {
		chapter.Description = reqData.Description
	}
	if reqData.OrderIndex != nil {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated successfully.", chapter)
}

// DeleteChapter soft-deletes a chapter, detaching its videos and deleting its
// quizzes in the same transaction
func DeleteChapter(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	chapterID, err := c.ParamsInt("chapter_id")
	if err != nil || chapterID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter id!", nil)
	}

	course, status, msg := loadOwnedCourse(userId, courseID)
	if course == nil {
		return middleware.JsonResponse(c, status, false, msg, nil)
	}

	var chapter content.Chapter
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?",
		chapterID, course.ID, false).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&content.Video{}).
			Where("chapter_id = ?", chapter.ID).Update("chapter_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&content.Quiz{}).
			Where("chapter_id = ?", chapter.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		chapter.IsDeleted = true
		return tx.Save(&chapter).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted successfully.", nil)
}
