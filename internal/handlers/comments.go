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

// GetGoalComments lists a goal's comments, oldest first.
func GetGoalComments(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "goal")
	}

	var goal models.Goal
	if err := database.DB.First(&goal, "id = ?", goalID).Error; err != nil {
		return notFound(c)
	}

	boardID, err := services.BoardIDForCategory(database.DB, goal.CategoryID)
	if err != nil {
		return fail(c, err)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return fail(c, err)
	}
	if err := authz.Authorize(authz.KindComment, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	var comments []models.GoalComment
	if err := database.DB.
		Where("goal_id = ?", goalID).
		Preload("User").
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(comments)
}

// AddComment comments on a live goal (writer+ on the goal's board).
func AddComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badID(c, "goal")
	}

	var req models.CreateCommentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
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
	if err := authz.Authorize(authz.KindComment, authz.ActionCreateChild, sub); err != nil {
		return fail(c, err)
	}

	live, err := services.GoalIsLive(database.DB, &goal)
	if err != nil {
		return fail(c, err)
	}
	if !live {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"goal": "Goal is archived or its board is deleted"},
		})
	}

	comment := models.GoalComment{
		GoalID: goalID,
		UserID: userID,
		Text:   req.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		return fail(c, err)
	}

	database.DB.Preload("User").First(&comment, "id = ?", comment.ID)

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// loadComment fetches a comment and the acting user's standing, including
// whether they authored it.
func loadComment(c *fiber.Ctx) (*models.GoalComment, authz.Subject, error) {
	userID := middleware.GetUserID(c)
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, authz.Subject{}, badID(c, "comment")
	}

	var comment models.GoalComment
	if err := database.DB.Preload("User").First(&comment, "id = ?", commentID).Error; err != nil {
		return nil, authz.Subject{}, notFound(c)
	}

	boardID, err := services.BoardIDForComment(database.DB, comment.ID)
	if err != nil {
		return nil, authz.Subject{}, fail(c, err)
	}

	sub, err := boardSubject(boardID, userID)
	if err != nil {
		return nil, authz.Subject{}, fail(c, err)
	}
	sub.IsAuthor = comment.UserID == userID
	return &comment, sub, nil
}

func GetComment(c *fiber.Ctx) error {
	comment, sub, done := loadComment(c)
	if comment == nil {
		return done
	}

	if err := authz.Authorize(authz.KindComment, authz.ActionView, sub); err != nil {
		return fail(c, err)
	}

	return c.JSON(comment)
}

// UpdateComment edits the text. Author only; board role is irrelevant.
func UpdateComment(c *fiber.Ctx) error {
	comment, sub, done := loadComment(c)
	if comment == nil {
		return done
	}

	if err := authz.Authorize(authz.KindComment, authz.ActionUpdate, sub); err != nil {
		return fail(c, err)
	}

	var req models.UpdateCommentRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if err := database.DB.Model(comment).Update("text", req.Text).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(comment)
}

// DeleteComment removes the comment. Author only.
func DeleteComment(c *fiber.Ctx) error {
	comment, sub, done := loadComment(c)
	if comment == nil {
		return done
	}

	if err := authz.Authorize(authz.KindComment, authz.ActionDelete, sub); err != nil {
		return fail(c, err)
	}

	if err := database.DB.Delete(&models.GoalComment{}, "id = ?", comment.ID).Error; err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
