package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/abdulhaleem7/identity-credential-service/config"
	"github.com/abdulhaleem7/identity-credential-service/db"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/handler"
	repo "github.com/abdulhaleem7/identity-credential-service/internal/identity/repository/postgres"
	"github.com/abdulhaleem7/identity-credential-service/internal/identity/service"
	"github.com/gofiber/fiber/v2"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := db.RunMigrations(ctx, cfg.DatabaseURL); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("connected to database")

	store := repo.NewRepository(dbPool)

	// A malformed signing key is fatal here; it is never deferred to
	// request time.
	tokenService, err := service.NewTokenService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	if err != nil {
		logger.Error("failed to initialize token service", "error", err)
		os.Exit(1)
	}

	userService := service.NewUserService(store, tokenService, store)
	identityHandler := handler.NewIdentityHandler(userService, logger)

	app := fiber.New()
	handler.RegisterRoutes(app, identityHandler)

	logger.Info("starting server", "port", cfg.Port, "env", cfg.Env)
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func initLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.LogFormat == "text" {
		h = slog.NewTextHandler(os.Stdout, opts)
	} else {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}
