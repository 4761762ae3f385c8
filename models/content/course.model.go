package content

import "gorm.io/gorm"

// Course represents a creator-owned collection of chapters and videos
type Course struct {
	gorm.Model
	Title        string `json:"title"`
	Description  string `json:"description"`
	CreatorID    uint   `json:"creator_id" gorm:"index;not null"`
	ThumbnailURL string `json:"thumbnail_url"`
	IsPublished  bool   `json:"is_published" gorm:"default:false"`
	IsDeleted    bool   `gorm:"default:false"`
}
