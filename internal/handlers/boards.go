package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/database"
	"github.com/teamgoals/teamgoals-api/internal/middleware"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"github.com/teamgoals/teamgoals-api/internal/services"
	"gorm.io/gorm"
)

// GetBoards lists the non-deleted boards the user participates in.
func GetBoards(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var boards []models.Board
	if err := database.DB.
		Select("boards.*").
		Joins("JOIN board_participants bp ON bp.board_id = boards.id").
		Where("bp.user_id = ? AND boards.is_deleted = ?", userID, false).
		Order("boards.created_at DESC").
		Find(&boards).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(boards)
}

// CreateBoard creates a board and makes the caller its owner in one
// transaction.
func CreateBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateBoardRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	board, err := services.CreateBoard(database.DB, userID, req.Title)
	if err != nil {
		return fail(c, err)
	}

	database.DB.Preload("Participants.User").First(board, "id = ?", board.ID)

	return c.Status(fiber.StatusCreated).JSON(board)
}

func GetBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "board")
	}

	var board models.Board
	if err := database.DB.
		Where("id = ? AND is_deleted = ?", boardID, false).
		Preload("Participants.User").
		First(&board).Error; err != nil {
		return notFound(c)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindBoard, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	return c.JSON(board)
}

// UpdateBoard changes the title (writer+). When the request carries a
// participants list the non-owner roster is replaced too, which is owner
// territory; title and roster then commit in one transaction.
func UpdateBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "board")
	}

	var board models.Board
	if err := database.DB.Where("id = ? AND is_deleted = ?", boardID, false).First(&board).Error; err != nil {
		return notFound(c)
	}

	var req models.UpdateBoardRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}

	if req.Participants != nil {
		if err := authz.Authorize(authz.KindBoard, authz.ActionManageRoster, sub); err != nil {
			return fail(c, err)
		}
		if err := services.ReplaceRoster(database.DB, boardID, userID, req.Title, *req.Participants); err != nil {
			return fail(c, err)
		}
	} else {
		if err := authz.Authorize(authz.KindBoard, authz.ActionUpdate, sub); err != nil {
			return fail(c, err)
		}
		if req.Title != nil {
			if err := database.DB.Model(&board).Update("title", *req.Title).Error; err != nil {
				return fail(c, err)
			}
		}
	}

	database.DB.Preload("Participants.User").First(&board, "id = ?", boardID)

	return c.JSON(board)
}

// DeleteBoard soft-deletes the board and cascades to its categories and
// goals. Owner only. Deleting an already-deleted board is a no-op success.
func DeleteBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "board")
	}

	var board models.Board
	if err := database.DB.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindBoard, authz.ActionDelete, sub); err != nil {
		return fail(c, err)
	}

	if _, err := services.DestroyBoard(database.DB, boardID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
