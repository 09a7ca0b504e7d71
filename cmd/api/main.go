package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cooler-emporium/internal/config"
	"cooler-emporium/internal/database"
	"cooler-emporium/internal/logger"
	"cooler-emporium/internal/server"
	"cooler-emporium/internal/service"
	"cooler-emporium/internal/storage"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 30 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close server resources
	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// newStore builds the slot backend the catalog persists into. The file
// backend needs no external services; the postgres backend connects, checks
// health and runs migrations first.
func newStore(cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	case "postgres":
		dbService, err := database.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}

		health := dbService.Health()
		log.Info("Database health check", zap.Any("health", health))

		if err := database.RunMigrations(dbService.DB(), "migrations", log); err != nil {
			dbService.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Info("Database migrations completed successfully")

		return storage.NewPostgresStore(dbService.DB()), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func main() {
	// Load .env before viper reads the environment; a missing file is fine
	godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting catalog API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize the slot store and rehydrate the catalog
	store, err := newStore(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize storage backend", zap.Error(err))
	}

	catalog := service.NewCatalogService(store, log)

	// Initialize the admin auth gate
	auth, err := service.NewAuthService(cfg.Admin.Password, cfg.Admin.SessionSecret,
		time.Duration(cfg.Admin.SessionExpiryMinutes)*time.Minute)
	if err != nil {
		log.Fatal("Failed to initialize auth service", zap.Error(err))
	}

	// Redis is optional; without it, login rate limiting is disabled
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// Create server
	srv := server.NewServer(cfg, log, catalog, auth, store, redisClient)

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)

	// Run graceful shutdown in a separate goroutine
	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
}
