package content

import "gorm.io/gorm"

// Quiz belongs to a creator and attaches to at most one of video, chapter or course
type Quiz struct {
	gorm.Model
	Title     string `json:"title"`
	CreatorID uint   `json:"creator_id" gorm:"index;not null"`
	VideoID   *uint  `json:"video_id" gorm:"index"`
	ChapterID *uint  `json:"chapter_id" gorm:"index"`
	CourseID  *uint  `json:"course_id" gorm:"index"`
	IsDeleted bool   `gorm:"default:false"`
}

type Question struct {
	gorm.Model
	QuizID     uint   `json:"quiz_id" gorm:"index;not null"`
	Text       string `json:"text" gorm:"type:text"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}
