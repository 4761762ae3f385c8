package videoController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func loadPublishedVideo(videoID int) (*content.Video, error) {
	var video content.Video
	err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?",
		videoID, false, true).First(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// WatchVideo marks a video as watched. Marking is idempotent: the first call
// records the row and bumps the view counter, repeats are a no-op.
func WatchVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	video, err := loadPublishedVideo(videoID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var existing content.WatchedVideo
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userId, video.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already watched.", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		watched := content.WatchedVideo{UserID: userId, VideoID: video.ID}
		if err := tx.Create(&watched).Error; err != nil {
			return err
		}
		return tx.Model(&content.Video{}).Where("id = ?", video.ID).
			Update("views", gorm.Expr("views + 1")).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			// A concurrent first watch hit the unique index; treat it as done
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already watched.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Watch recorded.", nil)
}

// LikeVideo records a like; a duplicate like is a conflict
func LikeVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	video, err := loadPublishedVideo(videoID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var existing content.VideoLike
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userId, video.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already liked!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		like := content.VideoLike{UserID: userId, VideoID: video.ID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&content.Video{}).Where("id = ?", video.ID).
			Update("likes", gorm.Expr("likes + 1")).Error
	})
	if err != nil {
		if database.IsDuplicate(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already liked!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record like!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Like recorded.", nil)
}

// UnlikeVideo removes a like; removing a like that is not there is not found
func UnlikeVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	var like content.VideoLike
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userId, videoID).
		First(&like).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Like not found!", nil)
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&like).Error; err != nil {
			return err
		}
		return tx.Model(&content.Video{}).Where("id = ? AND likes > 0", videoID).
			Update("likes", gorm.Expr("likes - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove like!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Like removed.", nil)
}

// SaveVideo bookmarks a video for the acting user
func SaveVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	video, err := loadPublishedVideo(videoID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var existing content.SavedVideo
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userId, video.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already saved!", nil)
	}

	saved := content.SavedVideo{UserID: userId, VideoID: video.ID}
	if err := database.Database.Db.Create(&saved).Error; err != nil {
		if database.IsDuplicate(err) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already saved!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Video saved.", nil)
}

// UnsaveVideo removes a bookmark
func UnsaveVideo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	var saved content.SavedVideo
	if err := database.Database.Db.Where("user_id = ? AND video_id = ?", userId, videoID).
		First(&saved).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Saved video not found!", nil)
	}

	if err := database.Database.Db.Unscoped().Delete(&saved).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove saved video!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Saved video removed.", nil)
}

// AddComment posts a comment on a published video
func AddComment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	reqData, ok := c.Locals("validatedComment").(*struct {
		Text string `json:"text"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	video, err := loadPublishedVideo(videoID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Video not found!", nil)
	}

	var comment content.Comment
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		comment = content.Comment{
			UserID:  userId,
			VideoID: video.ID,
			Text:    reqData.Text,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&content.Video{}).Where("id = ?", video.ID).
			Update("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Comment added.", comment)
}

// ListComments returns a page of comments with author names
func ListComments(c *fiber.Ctx) error {
	videoID, err := c.ParamsInt("id")
	if err != nil || videoID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid video id!", nil)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	type CommentWithAuthor struct {
		content.Comment
		AuthorName string `json:"author_name"`
	}

	var comments []CommentWithAuthor
	if err := database.Database.Db.Model(&content.Comment{}).
		Select("comments.*, users.name as author_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.video_id = ? AND comments.is_deleted = ?", videoID, false).
		Order("comments.created_at desc").
		Offset((page - 1) * limit).Limit(limit).
		Scan(&comments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	var total int64
	database.Database.Db.Model(&content.Comment{}).
		Where("video_id = ? AND is_deleted = ?", videoID, false).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully.", fiber.Map{
		"comments": comments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// DeleteComment removes the acting user's own comment (admins may remove any)
func DeleteComment(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	commentID, err := c.ParamsInt("comment_id")
	if err != nil || commentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid comment id!", nil)
	}

	var comment content.Comment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", commentID, false).
		First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	if comment.UserID != userId {
		var user models.User
		if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).
			First(&user).Error; err != nil || user.Role != models.RoleAdmin {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You cannot delete this comment!", nil)
		}
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		comment.IsDeleted = true
		if err := tx.Save(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&content.Video{}).Where("id = ? AND comments_count > 0", comment.VideoID).
			Update("comments_count", gorm.Expr("comments_count - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment deleted.", nil)
}
