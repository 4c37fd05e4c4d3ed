package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/api"
	"github.com/pageza/recipe-finder/backend/internal/database"
	"github.com/pageza/recipe-finder/backend/internal/router"
	"github.com/pageza/recipe-finder/backend/internal/server"
	"github.com/pageza/recipe-finder/backend/internal/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis backs the share cache and the generation rate limiter; both
	// degrade without it, so a failed connection is not fatal.
	redisClient, err := database.NewRedisClient(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, caching and rate limiting disabled", zap.Error(err))
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		logger.Warn("S3 unavailable, keeping provider image URLs", zap.Error(err))
		s3Config = nil
	}

	llmService, err := service.NewLLMService(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize AI gateway client", zap.Error(err))
	}
	imageService, err := service.NewImageService(cfg, s3Config, logger)
	if err != nil {
		logger.Fatal("failed to initialize image client", zap.Error(err))
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	sessionService := service.NewSessionService(db, redisClient, logger)
	generationService := service.NewGenerationService(llmService, imageService, sessionService, logger)

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Generation: api.NewGenerationHandler(generationService),
		Sessions:   api.NewSessionHandler(sessionService),
		Shares:     api.NewShareHandler(sessionService),
	}
	engine := router.SetupRouter(handlers, authService, redisClient, logger)

	srv := server.New(engine, cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
