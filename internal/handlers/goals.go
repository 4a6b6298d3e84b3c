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

// GetGoals lists the goals visible to the user: not archived, category
// not deleted, board not deleted, user a participant of the board. An
// optional ?category= query narrows to one category.
func GetGoals(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	query := database.DB.
		Select("goals.*").
		Joins("JOIN goal_categories gc ON gc.id = goals.category_id").
		Joins("JOIN boards b ON b.id = gc.board_id").
		Joins("JOIN board_participants bp ON bp.board_id = b.id").
		Where("bp.user_id = ?", userID).
		Where("goals.status != ?", models.StatusArchived).
		Where("gc.is_deleted = ? AND b.is_deleted = ?", false, false)

	if raw := c.Query("category"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return badID(c, "category")
		}
		query = query.Where("goals.category_id = ?", categoryID)
	}

	var goals []models.Goal
	if err := query.Preload("User").Order("goals.title ASC").Find(&goals).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(goals)
}

// CreateGoal creates a goal under a live category (writer+ on the
// category's board).
func CreateGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateGoalRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var category models.GoalCategory
	if err := database.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	// Membership first: a non-participant must see 404 before any
	// validation detail about the category leaks out.
	sub, err := boardSubject(category.BoardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindGoal, authz.ActionCreateChild, sub); err != nil {
		return fail(c, err)
	}

	if category.IsDeleted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"category": "Category is deleted"},
		})
	}

	goal := models.Goal{
		CategoryID:  category.ID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusToDo,
		Priority:    models.PriorityMedium,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}

	if err := database.DB.Create(&goal).Error; err != nil {
		return fail(c, err)
	}

	database.DB.Preload("User").First(&goal, "id = ?", goal.ID)

	return c.Status(fiber.StatusCreated).JSON(goal)
}

// loadGoal fetches a live goal and the acting user's standing on its
// board. Archived goals and goals under deleted categories read as not
// found.
func loadGoal(c *fiber.Ctx) (*models.Goal, authz.Subject, error) {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, authz.Subject{}, badID(c, "goal")
	}

	var goal models.Goal
	if err := database.DB.
		Select("goals.*").
		Joins("JOIN goal_categories gc ON gc.id = goals.category_id").
		Where("goals.id = ? AND goals.status != ? AND gc.is_deleted = ?",
			goalID, models.StatusArchived, false).
		Preload("User").
		First(&goal).Error; err != nil {
		return nil, authz.Subject{}, notFound(c)
	}

	boardID, err := services.BoardIDForCategory(database.DB, goal.CategoryID)
	if err != nil {
		return nil, authz.Subject{}, fail(c, err)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return nil, authz.Subject{}, fail(c, err)
	}
	return &goal, sub, nil
}

func GetGoal(c *fiber.Ctx) error {
	goal, sub, done := loadGoal(c)
	if goal == nil {
		return done
	}

	if err := authz.Authorize(authz.KindGoal, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	return c.JSON(goal)
}

func UpdateGoal(c *fiber.Ctx) error {
	goal, sub, done := loadGoal(c)
	if goal == nil {
		return done
	}

	if err := authz.Authorize(authz.KindGoal, authz.ActionUpdate, sub); err != nil {
		return fail(c, err)
	}

	var req models.UpdateGoalRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	if req.Priority != nil {
		goal.Priority = *req.Priority
	}
	if req.DueDate != nil {
		goal.DueDate = req.DueDate
	}

	if err := database.DB.Save(goal).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(goal)
}

// DeleteGoal archives the goal. Its comments stay. The goal is loaded
// without the live-only filter so a repeated delete is a no-op success.
func DeleteGoal(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "goal")
	}

	var goal models.Goal
	if err := database.DB.First(&goal, "id = ?", goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	boardID, err := services.BoardIDForCategory(database.DB, goal.CategoryID)
	if err != nil {
		return fail(c, err)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindGoal, authz.ActionDelete, sub); err != nil {
		return fail(c, err)
	}

	if _, err := services.DestroyGoal(database.DB, goal.ID); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
