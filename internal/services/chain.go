package services

import (
	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/gorm"
)

// Ownership-chain lookups: every entity below a board resolves to exactly
// one board, and that board is what authorization is checked against.

func BoardIDForCategory(db *gorm.DB, categoryID uuid.UUID) (uuid.UUID, error) {
	var category models.GoalCategory
	if err := db.Select("board_id").First(&category, "id = ?", categoryID).Error; err != nil {
		return uuid.Nil, err
	}
	return category.BoardID, nil
}

func BoardIDForGoal(db *gorm.DB, goalID uuid.UUID) (uuid.UUID, error) {
	var goal models.Goal
	if err := db.Select("category_id").First(&goal, "id = ?", goalID).Error; err != nil {
		return uuid.Nil, err
	}
	return BoardIDForCategory(db, goal.CategoryID)
}

func BoardIDForComment(db *gorm.DB, commentID uuid.UUID) (uuid.UUID, error) {
	var comment models.GoalComment
	if err := db.Select("goal_id").First(&comment, "id = ?", commentID).Error; err != nil {
		return uuid.Nil, err
	}
	return BoardIDForGoal(db, comment.GoalID)
}

// GoalIsLive reports whether a goal can take new comments: not archived,
// its category not deleted, its board not deleted.
func GoalIsLive(db *gorm.DB, goal *models.Goal) (bool, error) {
	if goal.Status == models.StatusArchived {
		return false, nil
	}
	var category models.GoalCategory
	if err := db.First(&category, "id = ?", goal.CategoryID).Error; err != nil {
		return false, err
	}
	if category.IsDeleted {
		return false, nil
	}
	var board models.Board
	if err := db.Select("is_deleted").First(&board, "id = ?", category.BoardID).Error; err != nil {
		return false, err
	}
	return !board.IsDeleted, nil
}
