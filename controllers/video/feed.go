package videoController

import (
	"edutok/database"
	"edutok/middleware"
	"edutok/models"
	"edutok/models/content"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetFeed returns a page of published videos for the acting user. Clips from
// followed creators and preferred categories come first; recent uploads fill
// the rest of the page.
func GetFeed(c *fiber.Ctx) error {
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
	offset := (page - 1) * limit

	var followeeIDs []uint
	database.Database.Db.Model(&models.Follow{}).
		Where("follower_id = ?", userId).Pluck("followee_id", &followeeIDs)

	var categoryIDs []uint
	database.Database.Db.Model(&models.CategoryPreference{}).
		Where("user_id = ?", userId).Pluck("category_id", &categoryIDs)

	personalizedWhere := func(query *gorm.DB) *gorm.DB {
		query = query.
			Where("is_published = ? AND is_deleted = ?", true, false).
			Where("creator_id <> ?", userId)

		switch {
		case len(followeeIDs) > 0 && len(categoryIDs) > 0:
			return query.Where("creator_id IN ? OR category_id IN ?", followeeIDs, categoryIDs)
		case len(followeeIDs) > 0:
			return query.Where("creator_id IN ?", followeeIDs)
		default:
			return query.Where("category_id IN ?", categoryIDs)
		}
	}

	var personalized []content.Video
	var personalizedTotal int64
	if len(followeeIDs) > 0 || len(categoryIDs) > 0 {
		if err := personalizedWhere(database.Database.Db.Model(&content.Video{})).
			Count(&personalizedTotal).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feed!", nil)
		}

		if err := personalizedWhere(database.Database.Db).
			Order("created_at desc, id desc").Offset(offset).Limit(limit).
			Find(&personalized).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feed!", nil)
		}
	}

	videos := personalized

	// Backfill with recent uploads outside the personalized pool. The two
	// pools are disjoint, so pages walk the personalized rows first and then
	// continue through the backfill rows without repeating either.
	if len(videos) < limit {
		fillQuery := database.Database.Db.
			Where("is_published = ? AND is_deleted = ?", true, false).
			Where("creator_id <> ?", userId)
		if len(followeeIDs) > 0 {
			fillQuery = fillQuery.Where("creator_id NOT IN ?", followeeIDs)
		}
		if len(categoryIDs) > 0 {
			fillQuery = fillQuery.Where("category_id IS NULL OR category_id NOT IN ?", categoryIDs)
		}

		fillOffset := offset - int(personalizedTotal)
		if fillOffset < 0 {
			fillOffset = 0
		}

		var fill []content.Video
		if err := fillQuery.Order("created_at desc, id desc").
			Offset(fillOffset).Limit(limit - len(videos)).
			Find(&fill).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch feed!", nil)
		}
		videos = append(videos, fill...)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feed fetched successfully.", fiber.Map{
		"videos": videos,
		"pagination": fiber.Map{
			"page":  page,
			"limit": limit,
		},
	})
}
