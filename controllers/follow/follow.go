package followController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"

	"github.com/gofiber/fiber/v2"
)

// Follow creates the edge actor -> target. A repeated follow reports a
// conflict rather than silently succeeding, so clients can tell the states
// apart.
func Follow(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFollow").(*struct {
		UserID uint `json:"userId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.UserID == userId {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "You cannot follow yourself!", nil)
	}

	var target models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.UserID, false).First(&target).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	// Check if the edge already exists
	var existing models.Follow
	if err := database.Database.Db.Where("follower_id = ? AND followee_id = ?", userId, reqData.UserID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already following this user!", nil)
	}

	follow := models.Follow{
		FollowerID: userId,
		FolloweeID: reqData.UserID,
	}
	if err := database.Database.Db.Create(&follow).Error; err != nil {
		if database.IsDuplicate(err) {
			// The unique index catches the race between check and create
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already following this user!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to follow!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Followed successfully.", follow)
}

// Unfollow removes the edge actor -> target
func Unfollow(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFollow").(*struct {
		UserID uint `json:"userId"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var follow models.Follow
	if err := database.Database.Db.Where("follower_id = ? AND followee_id = ?", userId, reqData.UserID).
		First(&follow).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "You are not following this user!", nil)
	}

	// Hard delete keeps the unique index honest for a later re-follow
	if err := database.Database.Db.Unscoped().Delete(&follow).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unfollow!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Unfollowed successfully.", nil)
}

// Followers lists users following the acting user
func Followers(c *fiber.Ctx) error {
	return followList(c, "followee_id", "follower_id")
}

// Following lists users the acting user follows
func Following(c *fiber.Ctx) error {
	return followList(c, "follower_id", "followee_id")
}

func followList(c *fiber.Ctx, matchColumn, pluckColumn string) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var ids []uint
	if err := database.Database.Db.Model(&models.Follow{}).
		Where(matchColumn+" = ?", userId).
		Order("created_at desc").Offset((page - 1) * limit).Limit(limit).
		Pluck(pluckColumn, &ids).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch follow list!", nil)
	}

	var users []models.User
	if len(ids) > 0 {
		if err := database.Database.Db.Select("id, name, bio, profile_image, role").
			Where("id IN ? AND is_deleted = ?", ids, false).
			Find(&users).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
		}
	}

	var total int64
	database.Database.Db.Model(&models.Follow{}).Where(matchColumn+" = ?", userId).Count(&total)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Follow list fetched successfully.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
