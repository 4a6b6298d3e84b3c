package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamgoals/teamgoals-api/internal/handlers"
	"github.com/teamgoals/teamgoals-api/internal/middleware"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)
	protected.Put("/me/password", handlers.ChangePassword)

	boards := protected.Group("/boards")
	boards.Get("/", handlers.GetBoards)
	boards.Post("/", handlers.CreateBoard)
	boards.Get("/:id", handlers.GetBoard)
	boards.Put("/:id", handlers.UpdateBoard)
	boards.Delete("/:id", handlers.DeleteBoard)
	boards.Get("/:id/categories", handlers.GetBoardCategories)

	categories := protected.Group("/categories")
	categories.Post("/", handlers.CreateCategory)
	categories.Get("/:id", handlers.GetCategory)
	categories.Put("/:id", handlers.UpdateCategory)
	categories.Delete("/:id", handlers.DeleteCategory)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Get("/:id", handlers.GetGoal)
	goals.Put("/:id", handlers.UpdateGoal)
	goals.Delete("/:id", handlers.DeleteGoal)
	goals.Get("/:id/comments", handlers.GetGoalComments)
	goals.Post("/:id/comments", handlers.AddComment)

	comments := protected.Group("/comments")
	comments.Get("/:id", handlers.GetComment)
	comments.Put("/:id", handlers.UpdateComment)
	comments.Delete("/:id", handlers.DeleteComment)

	bot := protected.Group("/bot")
	bot.Post("/verify", handlers.VerifyBot)
}
