package content

import "gorm.io/gorm"

// MaxVideoDurationSec is the hard cap on clip length
const MaxVideoDurationSec = 90

// Video is a short clip, optionally attached to a course chapter.
// Views, Likes and CommentsCount are denormalized counters kept current by
// the engagement handlers, not by the rows they summarize.
type Video struct {
	gorm.Model
	Title           string `json:"title"`
	Description     string `json:"description"`
	StorageKey      string `json:"storage_key"` // object-store key returned by the presign flow
	ThumbnailURL    string `json:"thumbnail_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"not null"`
	CreatorID       uint   `json:"creator_id" gorm:"index;not null"`
	CourseID        *uint  `json:"course_id" gorm:"index"`
	ChapterID       *uint  `json:"chapter_id" gorm:"index"`
	CategoryID      *uint  `json:"category_id" gorm:"index"`
	Views           int64  `json:"views" gorm:"default:0"`
	Likes           int64  `json:"likes" gorm:"default:0"`
	CommentsCount   int64  `json:"comments_count" gorm:"default:0"`
	IsPublished     bool   `json:"is_published" gorm:"default:false"`
	IsDeleted       bool   `gorm:"default:false"`
}
