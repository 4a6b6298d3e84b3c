package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/gorm"
)

// GetRole returns the user's role on a board. The second return is false
// when the user is not a participant at all.
func GetRole(db *gorm.DB, boardID, userID uuid.UUID) (authz.Role, bool, error) {
	var participant models.BoardParticipant
	err := db.Where("board_id = ? AND user_id = ?", boardID, userID).
		First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return participant.Role, true, nil
}

func IsParticipant(db *gorm.DB, boardID, userID uuid.UUID) (bool, error) {
	_, ok, err := GetRole(db, boardID, userID)
	return ok, err
}

// GrantOwner inserts the board's sole owner row. It belongs inside the
// board-creation transaction and must never run twice for one board.
func GrantOwner(tx *gorm.DB, boardID, userID uuid.UUID) error {
	var owners int64
	if err := tx.Model(&models.BoardParticipant{}).
		Where("board_id = ? AND role = ?", boardID, authz.RoleOwner).
		Count(&owners).Error; err != nil {
		return err
	}
	if owners != 0 {
		return fmt.Errorf("%w: board %s already has an owner", ErrConsistency, boardID)
	}
	participant := models.BoardParticipant{
		BoardID: boardID,
		UserID:  userID,
		Role:    authz.RoleOwner,
	}
	return tx.Create(&participant).Error
}

// CreateBoard creates a board and grants the creator ownership in one
// transaction.
func CreateBoard(db *gorm.DB, userID uuid.UUID, title string) (*models.Board, error) {
	board := models.Board{Title: title}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		return GrantOwner(tx, board.ID, userID)
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}
