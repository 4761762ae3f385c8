package content

import "gorm.io/gorm"

// QuizAttempt stores one graded submission. The composite unique index holds
// the one-attempt-per-user-per-quiz rule at the storage layer.
type QuizAttempt struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_quiz"`
	QuizID uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_user_quiz"`
	Score  int  `json:"score"` // 0-100
}

// UserQuizStats is a per-course rollup of a user's attempts. It is written in
// the same transaction as the attempt and recomputed nightly by the scheduler.
type UserQuizStats struct {
	gorm.Model
	UserID        uint    `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course_stats"`
	CourseID      uint    `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course_stats"`
	TotalAttempts int64   `json:"total_attempts" gorm:"default:0"`
	AvgScore      float64 `json:"avg_score" gorm:"default:0"`
}
