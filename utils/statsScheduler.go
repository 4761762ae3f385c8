package utils

import (
	"edutok/database"
	"edutok/models/content"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[STATS-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

type statRow struct {
	UserID   uint
	CourseID uint
	Total    int64
	Avg      float64
}

// RecomputeQuizStats rebuilds every UserQuizStats row from the attempts
// table. The per-attempt transactional upsert keeps the rollup current; this
// pass heals any drift it may have accumulated.
func RecomputeQuizStats(db *gorm.DB) error {
	var rows []statRow
	err := db.Model(&content.QuizAttempt{}).
		Select("quiz_attempts.user_id as user_id, quizzes.course_id as course_id, COUNT(*) as total, AVG(quiz_attempts.score) as avg").
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Where("quizzes.course_id IS NOT NULL AND quizzes.is_deleted = ?", false).
		Group("quiz_attempts.user_id, quizzes.course_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	for _, row := range rows {
		var stats content.UserQuizStats
		result := db.Where("user_id = ? AND course_id = ?", row.UserID, row.CourseID).First(&stats)
		if result.Error != nil {
			stats = content.UserQuizStats{
				UserID:        row.UserID,
				CourseID:      row.CourseID,
				TotalAttempts: row.Total,
				AvgScore:      row.Avg,
			}
			if err := db.Create(&stats).Error; err != nil {
				logScheduler("Error creating stats row: " + err.Error())
			}
			continue
		}

		if stats.TotalAttempts != row.Total || stats.AvgScore != row.Avg {
			stats.TotalAttempts = row.Total
			stats.AvgScore = row.Avg
			if err := db.Save(&stats).Error; err != nil {
				logScheduler("Error updating stats row: " + err.Error())
			}
		}
	}

	return nil
}

// StartStatsScheduler runs the rollup reconciliation nightly at 03:00
func StartStatsScheduler(c *cron.Cron) {
	c.AddFunc("0 3 * * *", func() {
		if err := RecomputeQuizStats(database.Database.Db); err != nil {
			logScheduler("Reconciliation failed: " + err.Error())
			return
		}
		logScheduler("Quiz stats reconciliation completed")
	})
	logScheduler("Stats scheduler started - runs nightly at 03:00")
}

// InitializeSchedulers initializes all background schedulers
func InitializeSchedulers() *cron.Cron {
	c := cron.New()

	StartStatsScheduler(c)

	c.Start()

	logScheduler("All schedulers initialized successfully")
	return c
}
