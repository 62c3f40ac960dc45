package main

import (
	"context"
	"log"

	"univer-cinema/cmd"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/jobs"
	"univer-cinema/internal/usecase"
	"univer-cinema/internal/wire"
	"univer-cinema/pkg/database"
	"univer-cinema/pkg/events"
	"univer-cinema/pkg/mailer"
	"univer-cinema/pkg/ratelimit"
	"univer-cinema/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
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

	// Schema
	if config.Database.AutoMigrate {
		if err := database.Migrate(config.Database.DSN()); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied")
	}

	// Connect to database
	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Redis backs rate limiting; without it limiting is disabled
	rdb, err := ratelimit.NewRedisClient(ctx, config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}
	limiter := ratelimit.New(rdb, config.App.Name+":ratelimit", config.Reset.RateLimit, config.Reset.RateLimitWindow)

	publisher := events.NewPublisher(config.AMQP.URL, config.AMQP.Queue, logger)
	defer publisher.Close()

	deps := usecase.Deps{
		Mailer:    mailer.New(config.Email, logger),
		Publisher: publisher,
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, deps, limiter, logger)

	if config.Scheduler.Enabled {
		scheduler, err := jobs.NewScheduler(app.Service.Maintenance, config.Scheduler, config.App.Location(), logger)
		if err != nil {
			logger.Fatal("Failed to create scheduler", zap.Error(err))
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Shutdown(); err != nil {
				logger.Warn("Scheduler shutdown failed", zap.Error(err))
			}
		}()
	}

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
