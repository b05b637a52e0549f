// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"homequest_backend/internal/app"
	"homequest_backend/internal/auth"
	"homequest_backend/internal/catalog"
	"homequest_backend/internal/config"
	"homequest_backend/internal/identity"
	"homequest_backend/internal/jobs"
	"homequest_backend/internal/kvstore"
	"homequest_backend/internal/platform/database"
	"homequest_backend/internal/platform/logger"
	"homequest_backend/internal/profile"
	"homequest_backend/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	db, err := database.NewGORM(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseGORMDB(db)

	if err := db.AutoMigrate(&catalog.Listing{}); err != nil {
		appLogger.Fatal("Failed to migrate catalog schema", zap.Error(err))
	}

	profileStore, err := buildProfileStore(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize profile store", zap.Error(err))
	}

	firebaseService, err := identity.NewFirebaseService(cfg, appLogger.Named("FirebaseService"))
	if err != nil {
		appLogger.Fatal("Failed to initialize identity provider", zap.Error(err))
	}

	profileService := profile.NewService(profileStore, appLogger.Named("ProfileService"))
	profileHandler := profile.NewHandler(profileService, appLogger.Named("ProfileHandler"))

	catalogRepo := catalog.NewGORMRepository(db)
	searchEngine := search.NewEngine(catalogRepo, cfg, appLogger.Named("SearchEngine"))
	searchHandler := search.NewHandler(searchEngine, appLogger.Named("SearchHandler"))

	authHandler := auth.NewHandler(firebaseService, profileService, appLogger.Named("AuthHandler"))

	archiveJob := jobs.NewCatalogArchiveJob(catalogRepo, appLogger, cfg)

	server, err := app.NewServer(cfg, appLogger, firebaseService, authHandler, profileHandler, searchHandler, archiveJob)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", zap.Error(err))
	}

	go func() {
		if err := server.Start(); err != nil {
			appLogger.Fatal("Server failed to start or crashed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	appLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ServerTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	} else {
		appLogger.Info("Server shutdown complete")
	}
}

// buildProfileStore selects the key-value backend from configuration.
func buildProfileStore(cfg *config.Config, db *gorm.DB, appLogger *zap.Logger) (kvstore.Store, error) {
	switch strings.ToLower(cfg.ProfileStoreBackend) {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			return nil, err
		}
		appLogger.Info("Profile store backend: redis", zap.String("addr", cfg.RedisAddr))
		return kvstore.NewRedisStore(client), nil
	case "memory":
		appLogger.Warn("Profile store backend: memory. Profiles will not survive a restart.")
		return kvstore.NewMemoryStore(), nil
	default:
		appLogger.Info("Profile store backend: postgres")
		return kvstore.NewGORMStore(db)
	}
}
