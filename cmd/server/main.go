package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/teamgoals/teamgoals-api/internal/config"
	"github.com/teamgoals/teamgoals-api/internal/database"
	"github.com/teamgoals/teamgoals-api/internal/middleware"
	"github.com/teamgoals/teamgoals-api/internal/routes"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	godotenv.Load()

	cfg := config.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	app := fiber.New(fiber.Config{
		AppName: "teamgoals-api",
	})
	app.Use(middleware.RequestLogger(log))

	routes.Setup(app)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
