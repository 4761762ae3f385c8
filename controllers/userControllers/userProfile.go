package userController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetProfile returns the acting user's profile with its preference set
func GetProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var preferences []models.CategoryPreference
	database.Database.Db.Where("user_id = ?", userId).Find(&preferences)

	var followers int64
	var following int64
	database.Database.Db.Model(&models.Follow{}).Where("followee_id = ?", userId).Count(&followers)
	database.Database.Db.Model(&models.Follow{}).Where("follower_id = ?", userId).Count(&following)

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"user":        user,
		"preferences": preferences,
		"followers":   followers,
		"following":   following,
	})
}

// UpdateProfile updates name, bio and profile image of the acting user
func UpdateProfile(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		Name         string `json:"name"`
		Bio          string `json:"bio"`
		ProfileImage string `json:"profileImage"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if reqData.Name != "" {
		user.Name = reqData.Name
	}
	if reqData.Bio != "" {
		user.Bio = reqData.Bio
	}
	if reqData.ProfileImage != "" {
		user.ProfileImage = reqData.ProfileImage
	}

	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully.", user)
}

// BecomeCreator upgrades a learner account to a creator account
func BecomeCreator(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != models.RoleLearner {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Account is already a creator!", nil)
	}

	user.Role = models.RoleCreator
	if err := database.Database.Db.Save(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "You are now a creator.", nil)
}

// SetPreferences replaces the acting user's whole preference set. Delete and
// recreate run in one transaction so a partial replacement is never visible.
func SetPreferences(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPreferences").(*struct {
		CategoryIDs []uint `json:"categoryIds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Every referenced category must exist before anything is touched
	var count int64
	database.Database.Db.Model(&models.Category{}).
		Where("id IN ? AND is_deleted = ?", reqData.CategoryIDs, false).Count(&count)
	if count != int64(len(reqData.CategoryIDs)) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "One or more categories not found!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userId).Delete(&models.CategoryPreference{}).Error; err != nil {
			return err
		}
		for _, categoryID := range reqData.CategoryIDs {
			pref := models.CategoryPreference{
				UserID:     userId,
				CategoryID: categoryID,
				Weight:     1,
			}
			if err := tx.Create(&pref).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences updated successfully.", nil)
}

// GetPreferences lists the acting user's preference rows
func GetPreferences(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var preferences []models.CategoryPreference
	if err := database.Database.Db.Where("user_id = ?", userId).Find(&preferences).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch preferences!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Preferences fetched successfully.", preferences)
}

func paginate(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}

// MyVideos lists videos owned by the acting user
func MyVideos(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	offset, limit := paginate(c)

	var videos []content.Video
	if err := database.Database.Db.Where("creator_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").Offset(offset).Limit(limit).Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully.", videos)
}

// MyCourses lists courses owned by the acting user
func MyCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	offset, limit := paginate(c)

	var courses []content.Course
	if err := database.Database.Db.Where("creator_id = ? AND is_deleted = ?", userId, false).
		Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

// SavedVideos lists the acting user's bookmarked videos
func SavedVideos(c *fiber.Ctx) error {
	return videosByEdge(c, &content.SavedVideo{}, "saved_videos")
}

// FavoriteVideos lists the acting user's liked videos
func FavoriteVideos(c *fiber.Ctx) error {
	return videosByEdge(c, &content.VideoLike{}, "video_likes")
}

// videosByEdge resolves the user-held id list of an edge table to videos
func videosByEdge(c *fiber.Ctx, edgeModel interface{}, table string) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	offset, limit := paginate(c)

	var videoIDs []uint
	if err := database.Database.Db.Model(edgeModel).
		Where("user_id = ?", userId).
		Order("created_at desc").Offset(offset).Limit(limit).
		Pluck("video_id", &videoIDs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch "+table+"!", nil)
	}

	if len(videoIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully.", []content.Video{})
	}

	var videos []content.Video
	if err := database.Database.Db.
		Where("id IN ? AND is_deleted = ?", videoIDs, false).
		Find(&videos).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch videos!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Videos fetched successfully.", videos)
}
