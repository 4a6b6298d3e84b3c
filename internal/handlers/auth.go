package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teamgoals/teamgoals-api/internal/database"
	"github.com/teamgoals/teamgoals-api/internal/middleware"
	"github.com/teamgoals/teamgoals-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	if req.Password != req.PasswordRepeat {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"passwordRepeat": "Passwords must match"},
		})
	}

	var existing models.User
	if err := database.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"username": "Username already taken"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, err)
	}

	user := models.User{
		Username:  req.Username,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return fail(c, err)
	}

	token, err := middleware.GenerateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.AuthResponse{Token: token, User: user})
}

func Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid username or password",
		})
	}

	token, err := middleware.GenerateToken(user.ID, user.Username)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(models.AuthResponse{Token: token, User: user})
}

func GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound(c)
		}
		return fail(c, err)
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.UpdateProfileRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return notFound(c)
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}

	if err := database.DB.Save(&user).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(user)
}

func ChangePassword(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.ChangePasswordRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return notFound(c)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": fiber.Map{"oldPassword": "Incorrect password"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, err)
	}

	if err := database.DB.Model(&user).Update("password", string(hash)).Error; err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
