package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"gorm.io/gorm"
)

// ReplaceRoster reconciles a board's non-owner participants against the
// desired roster: rows absent from desired are deleted, rows with a
// changed role are updated, new entries are inserted. The acting owner's
// row is untouchable through this path. When title is non-nil the board
// title is updated inside the same transaction.
//
// The whole request is rejected before any write if desired contains the
// acting owner, assigns the owner role, repeats a user, or references an
// unknown user. An empty desired roster clears all non-owner participants.
func ReplaceRoster(db *gorm.DB, boardID, actingOwnerID uuid.UUID, title *string, desired []models.RosterEntry) error {
	desiredByUser := make(map[uuid.UUID]authz.Role, len(desired))
	for _, entry := range desired {
		if entry.UserID == actingOwnerID {
			return newValidationError("participants", "the board owner cannot appear in the roster")
		}
		if entry.Role == authz.RoleOwner {
			return newValidationError("participants", "the owner role cannot be assigned")
		}
		if !entry.Role.Valid() {
			return newValidationError("participants", fmt.Sprintf("invalid role for user %s", entry.UserID))
		}
		if _, dup := desiredByUser[entry.UserID]; dup {
			return newValidationError("participants", fmt.Sprintf("user %s listed more than once", entry.UserID))
		}
		desiredByUser[entry.UserID] = entry.Role
	}

	if len(desiredByUser) > 0 {
		userIDs := make([]uuid.UUID, 0, len(desiredByUser))
		for id := range desiredByUser {
			userIDs = append(userIDs, id)
		}
		var known int64
		if err := db.Model(&models.User{}).Where("id IN ?", userIDs).Count(&known).Error; err != nil {
			return err
		}
		if known != int64(len(userIDs)) {
			return newValidationError("participants", "roster references an unknown user")
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var current []models.BoardParticipant
		if err := tx.Where("board_id = ? AND user_id != ?", boardID, actingOwnerID).
			Find(&current).Error; err != nil {
			return err
		}

		remaining := make(map[uuid.UUID]authz.Role, len(desiredByUser))
		for id, role := range desiredByUser {
			remaining[id] = role
		}

		for _, participant := range current {
			role, keep := remaining[participant.UserID]
			if !keep {
				if err := tx.Delete(&models.BoardParticipant{}, "id = ?", participant.ID).Error; err != nil {
					return err
				}
				continue
			}
			if participant.Role != role {
				if err := tx.Model(&models.BoardParticipant{}).
					Where("id = ?", participant.ID).
					Update("role", role).Error; err != nil {
					return err
				}
			}
			delete(remaining, participant.UserID)
		}

		for userID, role := range remaining {
			participant := models.BoardParticipant{
				BoardID: boardID,
				UserID:  userID,
				Role:    role,
			}
			if err := tx.Create(&participant).Error; err != nil {
				return err
			}
		}

		if title != nil {
			if err := tx.Model(&models.Board{}).
				Where("id = ?", boardID).
				Update("title", *title).Error; err != nil {
				return err
			}
		}

		var owners int64
		if err := tx.Model(&models.BoardParticipant{}).
			Where("board_id = ? AND role = ?", boardID, authz.RoleOwner).
			Count(&owners).Error; err != nil {
			return err
		}
		if owners != 1 {
			return fmt.Errorf("%w: board %s has %d owners after reconcile", ErrConsistency, boardID, owners)
		}
		return nil
	})
}
