package models

import "gorm.io/gorm"

// Follow is an edge from a follower to a creator. The composite unique index
// keeps the edge single; self-follows are rejected at the handler.
type Follow struct {
	gorm.Model
	FollowerID uint `gorm:"index;not null;uniqueIndex:idx_follow_edge" json:"follower_id"`
	FolloweeID uint `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followee_id"`
}
