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

// GetBoardCategories lists a board's live categories.
func GetBoardCategories(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "board")
	}

	var board models.Board
	if err := database.DB.Where("id = ? AND is_deleted = ?", boardID, false).First(&board).Error; err != nil {
		return notFound(c)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindCategory, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	var categories []models.GoalCategory
	if err := database.DB.
		Where("board_id = ? AND is_deleted = ?", boardID, false).
		Preload("User").
		Order("title ASC").
		Find(&categories).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(categories)
}

// CreateCategory creates a category under a live board (writer+).
func CreateCategory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateCategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var board models.Board
	if err := database.DB.First(&board, "id = ?", req.BoardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	// Membership first: a non-participant must see 404 before any
	// validation detail about the board leaks out.
	sub, err := boardSubject(board.ID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindCategory, authz.ActionCreateChild, sub); err != nil {
		return fail(c, err)
	}

	if board.IsDeleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"board": "Board is deleted"},
		})
	}

	category := models.GoalCategory{
		BoardID: board.ID,
		UserID:  userID,
		Title:   req.Title,
	}
	if err := database.DB.Create(&category).Error; err != nil {
		return fail(c, err)
	}

	database.DB.Preload("User").First(&category, "id = ?", category.ID)

	return c.Status(fiber.StatusCreated).JSON(category)
}

// loadCategory fetches a live category and the acting user's standing on
// its board. A soft-deleted or unknown category reads as not found.
func loadCategory(c *fiber.Ctx) (*models.GoalCategory, authz.Subject, error) {
	userID := middleware.GetUserID(c)
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, authz.Subject{}, badID(c, "category")
	}

	var category models.GoalCategory
	if err := database.DB.
		Where("id = ? AND is_deleted = ?", categoryID, false).
		Preload("User").
		First(&category).Error; err != nil {
		return nil, authz.Subject{}, notFound(c)
	}

	sub, err := boardSubject(category.BoardID, userID)
	if err != nil {
		return nil, authz.Subject{}, fail(c, err)
	}
	return &category, sub, nil
}

func GetCategory(c *fiber.Ctx) error {
	category, sub, done := loadCategory(c)
	if category == nil {
		return done
	}

	if err := authz.Authorize(authz.KindCategory, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	return c.JSON(category)
}

func UpdateCategory(c *fiber.Ctx) error {
	category, sub, done := loadCategory(c)
	if category == nil {
		return done
	}

	if err := authz.Authorize(authz.KindCategory, authz.ActionUpdate, sub); err != nil {
		return fail(c, err)
	}

	var req models.UpdateCategoryRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if req.Title != nil {
		if err := database.DB.Model(category).Update("title", *req.Title).Error; err != nil {
			return fail(c, err)
		}
	}

	return c.JSON(category)
}

// DeleteCategory tombstones the category and archives its goals. Unlike
// the live-only reads, an already-deleted category is loaded here so a
// repeated delete is a no-op success.
func DeleteCategory(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	categoryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "category")
	}

	var category models.GoalCategory
	if err := database.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	sub, err := boardSubject(category.BoardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindCategory, authz.ActionDelete, sub); err != nil {
		return fail(c, err)
	}

	if _, err := services.DestroyCategory(database.DB, category.ID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
