// Package main is the entry point for the MealSync API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mealsync/backend/config"
	"github.com/mealsync/backend/internal/application/adapter"
	"github.com/mealsync/backend/internal/domain/entity"
	"github.com/mealsync/backend/internal/infra/cache"
	"github.com/mealsync/backend/internal/infra/db"
	"github.com/mealsync/backend/internal/infra/dependency"
	"github.com/mealsync/backend/internal/integration/email"
	"github.com/mealsync/backend/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()

	slog.Info("Starting MealSync API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	mealCatalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		slog.Error("Failed to load meal catalog", "error", err)
		os.Exit(1)
	}

	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			slog.Warn("Redis connection failed, running without plan cache", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" && cfg.Email.WorkerEnabled {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	} else {
		slog.Warn("Email worker disabled; digests will stay queued")
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient, mealCatalog, sender)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	if injector.EmailWorker != nil {
		go injector.EmailWorker.Start(workerCtx)
	}

	if cfg.Digest.Enabled {
		if err := injector.DigestScheduler.Start(); err != nil {
			slog.Error("Failed to start digest scheduler", "error", err)
			os.Exit(1)
		}
		defer injector.DigestScheduler.Stop()
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func loadCatalog(cfg config.CatalogConfig) (*entity.Catalog, error) {
	if cfg.File == "" {
		return config.DefaultCatalog()
	}
	slog.Info("Loading meal catalog", "file", cfg.File)
	return config.LoadCatalog(cfg.File)
}
