package database_test

import (
	"fmt"
	"strings"
	"testing"

	"edutok/database"
	"edutok/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestIsDuplicateClassifiesErrors(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	database.RunMigrations(db)

	edge := models.Follow{FollowerID: 1, FolloweeID: 2}
	require.NoError(t, db.Create(&edge).Error)

	// Same pair again trips the unique index
	dup := models.Follow{FollowerID: 1, FolloweeID: 2}
	err = db.Create(&dup).Error
	require.Error(t, err)
	require.True(t, database.IsDuplicate(err))

	// Anything else is not a duplicate
	require.False(t, database.IsDuplicate(gorm.ErrRecordNotFound))
	require.False(t, database.IsDuplicate(nil))
}
