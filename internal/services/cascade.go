package services

import (
	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/gorm"
)

// CascadeResult counts the rows each destroy actually changed. Re-running
// a destroy on an already-deleted entity succeeds with zero counts.
type CascadeResult struct {
	Boards     int64
	Categories int64
	Goals      int64
}

// DestroyBoard tombstones the board and everything under it: the board
// and its categories get is_deleted=true, every goal under those
// categories is archived regardless of its current status. Board rows are
// never hard-deleted. One transaction.
func DestroyBoard(db *gorm.DB, boardID uuid.UUID) (CascadeResult, error) {
	var res CascadeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		r := tx.Model(&models.Board{}).
			Where("id = ? AND is_deleted = ?", boardID, false).
			Update("is_deleted", true)
		if r.Error != nil {
			return r.Error
		}
		res.Boards = r.RowsAffected

		r = tx.Model(&models.GoalCategory{}).
			Where("board_id = ? AND is_deleted = ?", boardID, false).
			Update("is_deleted", true)
		if r.Error != nil {
			return r.Error
		}
		res.Categories = r.RowsAffected

		categoryIDs := tx.Model(&models.GoalCategory{}).
			Select("id").
			Where("board_id = ?", boardID)
		r = tx.Model(&models.Goal{}).
			Where("category_id IN (?) AND status != ?", categoryIDs, models.StatusArchived).
			Update("status", models.StatusArchived)
		if r.Error != nil {
			return r.Error
		}
		res.Goals = r.RowsAffected
		return nil
	})
	if err != nil {
		return CascadeResult{}, err
	}
	return res, nil
}

// DestroyCategory tombstones the category and archives its non-archived
// goals in one transaction.
func DestroyCategory(db *gorm.DB, categoryID uuid.UUID) (CascadeResult, error) {
	var res CascadeResult
	err := db.Transaction(func(tx *gorm.DB) error {
		r := tx.Model(&models.GoalCategory{}).
			Where("id = ? AND is_deleted = ?", categoryID, false).
			Update("is_deleted", true)
		if r.Error != nil {
			return r.Error
		}
		res.Categories = r.RowsAffected

		r = tx.Model(&models.Goal{}).
			Where("category_id = ? AND status != ?", categoryID, models.StatusArchived).
			Update("status", models.StatusArchived)
		if r.Error != nil {
			return r.Error
		}
		res.Goals = r.RowsAffected
		return nil
	})
	if err != nil {
		return CascadeResult{}, err
	}
	return res, nil
}

// DestroyGoal archives the goal. Comments are left alone; they stay
// visible and remain editable by their authors.
func DestroyGoal(db *gorm.DB, goalID uuid.UUID) (CascadeResult, error) {
	var res CascadeResult
	r := db.Model(&models.Goal{}).
		Where("id = ? AND status != ?", goalID, models.StatusArchived).
		Update("status", models.StatusArchived)
	if r.Error != nil {
		return CascadeResult{}, r.Error
	}
	res.Goals = r.RowsAffected
	return res, nil
}
