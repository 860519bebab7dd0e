// Package setup bootstraps the application dependencies.
package setup

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/scrobblyx/crowned/internal/database"
	"github.com/scrobblyx/crowned/internal/lastfm"
	"github.com/scrobblyx/crowned/internal/redis"
	"github.com/scrobblyx/crowned/internal/setup/client"
	"github.com/scrobblyx/crowned/internal/setup/config"
	"github.com/scrobblyx/crowned/internal/setup/logger"
)

// App bundles all core dependencies and services needed by the application.
// Each field represents a major subsystem that needs initialization and cleanup.
type App struct {
	Config       *config.Config  // Application configuration
	Logger       *zap.Logger     // Main application logger
	DBLogger     *zap.Logger     // Database-specific logger
	DB           database.Client // Database connection pool
	RedisManager *redis.Manager  // Redis connection manager
	LastFM       *lastfm.Client  // Last.fm API client
}

// InitializeApp bootstraps all application dependencies in the correct order,
// ensuring each component has its required dependencies available.
func InitializeApp(ctx context.Context, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	mainLogger, dbLogger, err := logger.GetLoggers(
		logDir, cfg.Common.Debug.LogLevel, cfg.Common.Debug.MaxLogsToKeep,
	)
	if err != nil {
		return nil, err
	}

	// Redis manager provides connection pools for various subsystems
	redisManager := redis.NewManager(&cfg.Common.Redis, mainLogger)

	// Initialize database with automatic migrations
	db, err := database.NewConnection(ctx, &cfg.Common.PostgreSQL, dbLogger, true)
	if err != nil {
		return nil, err
	}

	// Last.fm client is configured with middleware chain
	requestTimeout := time.Duration(cfg.Bot.RequestTimeout) * time.Millisecond

	httpClient, err := client.GetLastFMClient(&cfg.Common, redisManager, mainLogger, requestTimeout)
	if err != nil {
		return nil, err
	}

	lastfmClient := lastfm.NewClient(httpClient, cfg.Common.LastFM.APIKey, mainLogger)

	// Bundle all initialized components
	return &App{
		Config:       cfg,
		Logger:       mainLogger,
		DBLogger:     dbLogger.Named("database"),
		DB:           db,
		RedisManager: redisManager,
		LastFM:       lastfmClient,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse initialization order.
// Logs but does not fail on cleanup errors to ensure all components get cleanup attempts.
func (s *App) Cleanup(_ context.Context) {
	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}

	// Close database connections
	if err := s.DB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}

	// Close Redis connections last as other components might need it during cleanup
	s.RedisManager.Close()
}
