package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"marketplace_service/config"
	"marketplace_service/internal/app"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := setupLogger("info")

	cfg := config.LoadConfig(logger)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Warnf("Invalid log level '%s' in config, using default 'info'. Error: %v", cfg.LogLevel, err)
	} else {
		logger.SetLevel(logLevel)
	}
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Info("Starting Marketplace Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}

	runErr := application.Run(ctx)
	if err := application.Close(); err != nil {
		logger.Errorf("Error closing connections: %v", err)
	}
	if runErr != nil {
		logger.Errorf("Marketplace Service stopped with error: %v", runErr)
		os.Exit(1)
	}
	logger.Info("Marketplace Service shut down gracefully.")
}

func setupLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Invalid log level '%s', using default 'info'. Error: %v", level, err)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)
	return logger
}
