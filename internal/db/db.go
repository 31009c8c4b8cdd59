package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"linkhub/internal/config"
	"linkhub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to PostgreSQL, migrates the schema and seeds default subreddits.
// The returned handle is the single pooled connection shared by all repositories.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLife)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		// close the handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Database connection established")

	if err := Migrate(gdb); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("Database migration completed")

	if err := seedSubreddits(gdb, logger); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return gdb, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Subreddit{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func seedSubreddits(gdb *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := gdb.Model(&models.Subreddit{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count subreddits: %w", err)
	}
	if count > 0 {
		logger.Debug("Subreddits already seeded, skipping")
		return nil
	}

	subreddits := []models.Subreddit{
		{Name: "programming", Description: "Links about writing software"},
		{Name: "news", Description: "What is happening right now"},
		{Name: "showoff", Description: "Things people built"},
		{Name: "random", Description: "Everything else"},
	}
	for _, sub := range subreddits {
		if err := gdb.Create(&sub).Error; err != nil {
			logger.Warn("Failed to create subreddit", "name", sub.Name, "error", err)
		}
	}
	logger.Info("Initial subreddits created", "count", len(subreddits))
	return nil
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
