package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storepulse/internal/app/store/config"
	"storepulse/internal/app/store/db"
	"storepulse/internal/app/store/handler"
	"storepulse/internal/app/store/repository"
	"storepulse/internal/app/store/service"
	"storepulse/internal/app/store/util"
	"storepulse/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("storepulse", logLevel)

	database, err := db.Connect(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := db.Migrate(database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database")
	}

	if err := db.Seed(database); err != nil {
		logger.Fatal().Err(err).Msg("Failed to seed database")
	}

	redisClient, err := util.NewRedisClient(
		cfg.Redis.Address(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().
		Str("address", cfg.Redis.Address()).
		Msg("Connected to Redis")

	kafkaProducer := util.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	jwtManager := util.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenDuration)

	productRepo := repository.NewProductRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	userRepo := repository.NewUserRepository(database)

	catalogService := service.NewCatalogService(productRepo, redisClient)
	reviewService := service.NewReviewService(reviewRepo, productRepo, kafkaProducer)
	analyticsService := service.NewAnalyticsService(reviewRepo)
	authService := service.NewAuthService(userRepo, jwtManager)
	userService := service.NewUserService(userRepo)

	authMiddleware := handler.NewAuthMiddleware(jwtManager)
	productHandler := handler.NewProductHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService, analyticsService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	router := handler.SetupRoutes(
		productHandler,
		reviewHandler,
		authHandler,
		userHandler,
		authMiddleware,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting StorePulse")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down StorePulse...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("StorePulse stopped gracefully")
}
