package content

import "gorm.io/gorm"

// MaxCommentLen caps comment text length
const MaxCommentLen = 1000

// WatchedVideo marks that a user has seen a video. Unique per pair, so
// repeated watch calls stay idempotent.
type WatchedVideo struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_watched"`
	VideoID uint `json:"video_id" gorm:"not null;uniqueIndex:idx_watched"`
}

// SavedVideo is a user's bookmark on a video
type SavedVideo struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_saved"`
	VideoID uint `json:"video_id" gorm:"not null;uniqueIndex:idx_saved"`
}

// VideoLike is a user's like on a video
type VideoLike struct {
	gorm.Model
	UserID  uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_liked"`
	VideoID uint `json:"video_id" gorm:"not null;uniqueIndex:idx_liked"`
}

type Comment struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	VideoID   uint   `json:"video_id" gorm:"index;not null"`
	Text      string `json:"text" gorm:"size:1000;not null"`
	IsDeleted bool   `gorm:"default:false"`
}
