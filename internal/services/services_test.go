package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Shared-cache in-memory database so every pooled connection sees the
	// same data, named per test for isolation.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.BoardParticipant{},
		&models.GoalCategory{},
		&models.Goal{},
		&models.GoalComment{},
		&models.TgUser{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createCategory(t *testing.T, db *gorm.DB, boardID, userID uuid.UUID, title string) *models.GoalCategory {
	t.Helper()
	category := models.GoalCategory{BoardID: boardID, UserID: userID, Title: title}
	require.NoError(t, db.Create(&category).Error)
	return &category
}

func createGoal(t *testing.T, db *gorm.DB, categoryID, userID uuid.UUID, title string, status models.GoalStatus) *models.Goal {
	t.Helper()
	goal := models.Goal{
		CategoryID: categoryID,
		UserID:     userID,
		Title:      title,
		Status:     status,
		Priority:   models.PriorityMedium,
	}
	require.NoError(t, db.Create(&goal).Error)
	return &goal
}

func ownerCount(t *testing.T, db *gorm.DB, boardID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.BoardParticipant{}).
		Where("board_id = ? AND role = ?", boardID, authz.RoleOwner).
		Count(&n).Error)
	return n
}
