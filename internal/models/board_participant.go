package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"gorm.io/gorm"
)

// BoardParticipant grants a user a role on a board. Exactly one owner row
// exists per board; it is created with the board and never altered by the
// roster path.
type BoardParticipant struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID  `json:"boardId" gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	UserID    uuid.UUID  `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_board_user"`
	Role      authz.Role `json:"role" gorm:"not null"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (bp *BoardParticipant) BeforeCreate(tx *gorm.DB) error {
	if bp.ID == uuid.Nil {
		bp.ID = uuid.New()
	}
	return nil
}
