package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamgoals/teamgoals-api/internal/database"
	"github.com/teamgoals/teamgoals-api/internal/middleware"
	"github.com/teamgoals/teamgoals-api/internal/models"
)

// VerifyBot claims a one-time verification code issued by the chat bot,
// linking that chat to the acting user. The code is cleared on success so
// it cannot be replayed.
func VerifyBot(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.VerifyBotRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var tgUser models.TgUser
	if err := database.DB.Where("verification_code = ?", req.VerificationCode).First(&tgUser).Error; err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"verificationCode": "Invalid verification code"},
		})
	}

	tgUser.UserID = &userID
	tgUser.VerificationCode = nil
	if err := database.DB.Save(&tgUser).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(tgUser)
}
