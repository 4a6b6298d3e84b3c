package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"gorm.io/gorm"
)

type Board struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	IsDeleted bool      `json:"isDeleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Participants []BoardParticipant `json:"participants,omitempty" gorm:"foreignKey:BoardID"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Board DTOs
type CreateBoardRequest struct {
	Title string `json:"title" validate:"required,max=255"`
}

// UpdateBoardRequest updates the title and, when Participants is present,
// replaces the non-owner roster in the same transaction.
type UpdateBoardRequest struct {
	Title        *string        `json:"title" validate:"omitempty,max=255"`
	Participants *[]RosterEntry `json:"participants"`
}

type RosterEntry struct {
	UserID uuid.UUID  `json:"userId" validate:"required"`
	Role   authz.Role `json:"role" validate:"required"`
}
