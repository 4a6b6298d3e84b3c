package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/teamgoals/teamgoals-api/internal/authz"
	"github.com/teamgoals/teamgoals-api/internal/database"
	"github.com/teamgoals/teamgoals-api/internal/services"
)

var validate = validator.New()

// parseBody decodes and validates the request body. When it returns
// ok=false the error response has already been written.
func parseBody(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": validationFields(err),
		})
	}
	return true, nil
}

func validationFields(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field()[:1])+fe.Field()[1:]] = fe.Tag()
		}
	}
	return fields
}

// boardSubject resolves the acting user's standing on a board.
func boardSubject(boardID, userID uuid.UUID) (authz.Subject, error) {
	role, _, err := services.GetRole(database.DB, boardID, userID)
	if err != nil {
		return authz.Subject{}, err
	}
	return authz.Subject{Role: role}, nil
}

// fail translates core errors to the boundary contract: NotAParticipant
// hides the resource (404), other denials are 403, validation errors are
// 400 with field-keyed reasons, everything else is a 500.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, authz.ErrNotParticipant):
		return notFound(c)
	case errors.Is(err, authz.ErrInsufficientRole), errors.Is(err, authz.ErrNotAuthor):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have permission",
		})
	}

	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"error": "Not found",
	})
}

func badID(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid " + what + " ID",
	})
}
