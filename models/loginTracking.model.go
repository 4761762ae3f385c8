package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginTracking records each successful login for audit purposes
type LoginTracking struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Device    string    `gorm:"size:255" json:"device"`
	Timestamp time.Time `json:"timestamp"`
	IsDeleted bool      `gorm:"default:false"`
}
