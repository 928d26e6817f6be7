package db

import (
	"fmt"

	"github.com/terraincognita07/stackcheck/internal/logger"
	"github.com/terraincognita07/stackcheck/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects to a hosted database. The embedded SQL files are
// SQLite dialect, so the schema is reconciled from the models instead.
func OpenPostgres(dsn string, log *logger.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.DailyEntry{},
		&models.Supplement{},
		&models.SupplementRange{},
		&models.PatternInsight{},
	); err != nil {
		return nil, fmt.Errorf("auto-migrate postgres schema: %w", err)
	}

	return database, nil
}

// Open picks the driver by name.
func Open(driver string, sqlitePath string, postgresDSN string, log *logger.Logger) (*gorm.DB, error) {
	switch driver {
	case "", DriverSQLite:
		return OpenSQLite(sqlitePath, log)
	case DriverPostgres:
		return OpenPostgres(postgresDSN, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
