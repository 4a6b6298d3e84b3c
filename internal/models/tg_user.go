package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TgUser links a Telegram chat to a platform account. The bot creates the
// row with a one-time verification code; claiming the code through the API
// attaches the user and clears it.
type TgUser struct {
	ID               uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	TelegramChatID   string     `json:"telegramChatId" gorm:"uniqueIndex;not null"`
	TelegramUserID   string     `json:"telegramUserId" gorm:"index"`
	UserID           *uuid.UUID `json:"userId" gorm:"type:uuid"`
	VerificationCode *string    `json:"-" gorm:"index"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (tu *TgUser) BeforeCreate(tx *gorm.DB) error {
	if tu.ID == uuid.Nil {
		tu.ID = uuid.New()
	}
	return nil
}

// NewVerificationCode assigns a fresh one-time code and returns it.
func (tu *TgUser) NewVerificationCode() string {
	b := make([]byte, 16) // 32 hex chars
	rand.Read(b)
	code := hex.EncodeToString(b)
	tu.VerificationCode = &code
	return code
}

type VerifyBotRequest struct {
	VerificationCode string `json:"verificationCode" validate:"required"`
}
