package models

import "gorm.io/gorm"

// Category groups videos by topic and drives feed personalization
type Category struct {
	gorm.Model
	Name        string `gorm:"size:100;unique;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	IsDeleted   bool   `gorm:"default:false"`
}

// CategoryPreference is one row of a user's preference set. The whole set is
// replaced atomically on update, never patched row by row.
type CategoryPreference struct {
	gorm.Model
	UserID     uint    `gorm:"index;not null;uniqueIndex:idx_user_category" json:"user_id"`
	CategoryID uint    `gorm:"not null;uniqueIndex:idx_user_category" json:"category_id"`
	Weight     float64 `gorm:"default:1" json:"weight"`
}
