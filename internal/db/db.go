package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"waste-bi-backend/internal/config"
	"waste-bi-backend/internal/kvstore"
)

// New opens the facility's local SQLite store and runs migrations.
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %q: %w", cfg.DB.Path, err)
	}

	if err := database.AutoMigrate(&kvstore.Entry{}); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	log.Info().Str("path", cfg.DB.Path).Msg("database ready")
	return database, nil
}
