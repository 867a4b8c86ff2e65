// main.go
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"review-service/cmd"
	"review-service/internal/data/repository"
	"review-service/internal/usecase"
	"review-service/internal/wire"
	"review-service/pkg/database"
	"review-service/pkg/mailer"
	"review-service/pkg/security"
	"review-service/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}

	tokens, err := security.NewTokenIssuer(config.JWT.Secret, config.JWT.Expiry())
	if err != nil {
		logger.Fatal("Invalid JWT configuration", zap.Error(err))
	}
	codes, err := security.NewCodeGenerator(config.Security.SecretKey, config.Security.CodeTTL())
	if err != nil {
		logger.Fatal("Invalid security configuration", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	deps := usecase.Dependencies{
		Tokens: tokens,
		Codes:  codes,
		Mailer: mailer.NewMailer(config.Email, logger),
	}

	// Wire all dependencies
	app := wire.Wiring(repos, deps, tokens, db, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server error", zap.Error(err))
	}
}
