package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/daon-health/vitalog/internal/ai"
	"github.com/daon-health/vitalog/internal/api"
	"github.com/daon-health/vitalog/internal/auth"
	"github.com/daon-health/vitalog/internal/config"
	"github.com/daon-health/vitalog/internal/db"
	"github.com/daon-health/vitalog/internal/speech"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	zapLogger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		zapLogger.Fatal("database init failed", zap.Error(err))
	}

	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)
	generator := ai.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.AITimeout, zapLogger)
	assistant := ai.NewAssistant(generator, zapLogger)
	emotions := ai.NewEmotionAnalyzer(generator, zapLogger)
	transcriber := speech.NewClient(cfg.SpeechAPIKey, cfg.AITimeout, zapLogger)

	handler := api.NewHandler(database, tokens, assistant, emotions, transcriber, zapLogger)

	app := fiber.New(fiber.Config{
		AppName:               "Vitalog",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, OPTIONS",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			zapLogger.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("vitalog listening",
		zap.String("port", cfg.Port),
		zap.String("db", cfg.DBPath),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zapLogger.Fatal("server exited", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
