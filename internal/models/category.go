package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalCategory groups goals inside a board. BoardID is fixed at creation.
// UserID records the creator for display only; authorization always goes
// through board membership.
type GoalCategory struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID `json:"boardId" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	Title     string    `json:"title" gorm:"not null"`
	IsDeleted bool      `json:"isDeleted" gorm:"not null;default:false;index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (gc *GoalCategory) BeforeCreate(tx *gorm.DB) error {
	if gc.ID == uuid.Nil {
		gc.ID = uuid.New()
	}
	return nil
}

// Category DTOs
type CreateCategoryRequest struct {
	BoardID uuid.UUID `json:"board" validate:"required"`
	Title   string    `json:"title" validate:"required,max=255"`
}

type UpdateCategoryRequest struct {
	Title *string `json:"title" validate:"omitempty,max=255"`
}
