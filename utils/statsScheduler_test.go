package utils

import (
	"fmt"
	"strings"
	"testing"

	"edutok/database"
	"edutok/models/content"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDb(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)
	return db
}

func TestRecomputeQuizStatsHealsDrift(t *testing.T) {
	db := openTestDb(t)

	courseID := uint(1)
	quiz := content.Quiz{Title: "Checkpoint", CreatorID: 1, CourseID: &courseID}
	require.NoError(t, db.Create(&quiz).Error)

	require.NoError(t, db.Create(&content.QuizAttempt{UserID: 7, QuizID: quiz.ID, Score: 60}).Error)

	// A drifted rollup, as if a counter update was lost
	stale := content.UserQuizStats{UserID: 7, CourseID: courseID, TotalAttempts: 5, AvgScore: 10}
	require.NoError(t, db.Create(&stale).Error)

	require.NoError(t, RecomputeQuizStats(db))

	var healed content.UserQuizStats
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 7, courseID).First(&healed).Error)
	require.EqualValues(t, 1, healed.TotalAttempts)
	require.InDelta(t, 60.0, healed.AvgScore, 0.001)
}

func TestRecomputeQuizStatsCreatesMissingRows(t *testing.T) {
	db := openTestDb(t)

	courseID := uint(2)
	quiz := content.Quiz{Title: "Checkpoint", CreatorID: 1, CourseID: &courseID}
	require.NoError(t, db.Create(&quiz).Error)
	second := content.Quiz{Title: "Checkpoint 2", CreatorID: 1, CourseID: &courseID}
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, db.Create(&content.QuizAttempt{UserID: 9, QuizID: quiz.ID, Score: 80}).Error)
	require.NoError(t, db.Create(&content.QuizAttempt{UserID: 9, QuizID: second.ID, Score: 100}).Error)

	require.NoError(t, RecomputeQuizStats(db))

	var stats content.UserQuizStats
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", 9, courseID).First(&stats).Error)
	require.EqualValues(t, 2, stats.TotalAttempts)
	require.InDelta(t, 90.0, stats.AvgScore, 0.001)
}

func TestRecomputeQuizStatsIgnoresStandaloneQuizzes(t *testing.T) {
	db := openTestDb(t)

	quiz := content.Quiz{Title: "Standalone", CreatorID: 1}
	require.NoError(t, db.Create(&quiz).Error)
	require.NoError(t, db.Create(&content.QuizAttempt{UserID: 3, QuizID: quiz.ID, Score: 50}).Error)

	require.NoError(t, RecomputeQuizStats(db))

	var count int64
	db.Model(&content.UserQuizStats{}).Count(&count)
	require.EqualValues(t, 0, count)
}
