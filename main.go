package main

import (
	"context"
	"log"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/events"
	"cinema-reservation/internal/wire"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
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

	// Migrate schema before the pool is handed out
	if config.Database.AutoMigrate {
		if err := database.Migrate(database.URL(config.Database), logger); err != nil {
			logger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	// Redis backs the reservation rate limit; without it the limit is off
	var limiterStore redis.Scripter
	if config.Redis.Addr != "" {
		rdb, err := database.NewRedisClient(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		} else {
			defer rdb.Close()
			limiterStore = rdb
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// Reservation events
	publisher := events.NewNoopPublisher(logger)
	if config.AMQP.URL != "" {
		rabbit, err := events.NewRabbitPublisher(config.AMQP.URL, logger)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, events will be dropped", zap.Error(err))
		} else {
			publisher = rabbit
		}
	}
	defer publisher.Close()

	app := wire.Wiring(repos, publisher, limiterStore, config, logger)

	if err := app.Service.Auth.SeedAdmin(context.Background(), config.Admin.Email, config.Admin.Password); err != nil {
		logger.Fatal("Failed to seed admin account", zap.Error(err))
	}

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
