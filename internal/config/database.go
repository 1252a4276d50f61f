package config

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/resume-tailor/internal/models"
)

// InitDatabase opens the job status store. The default DSN is an in-memory
// SQLite database, so job records never outlive the process.
func InitDatabase(cfg *Config, log zerolog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open job store: %w", err)
	}

	// Shared-cache memory databases lock per table; keep a single connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access job store: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info().Msg("✅ Job store opened")

	if err := db.AutoMigrate(&models.Job{}); err != nil {
		return nil, fmt.Errorf("failed to migrate job store: %w", err)
	}

	log.Info().Msg("✅ Job store migration completed")

	return db, nil
}
