package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gamelibrary/backend/internal/config"
	"gamelibrary/backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database selected by driver and returns the handle.
// SQL logging goes through the application logger.
func Connect(driver, dsn string, appLog *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	// Configure GORM logger
	customLogger := logger.New(
		log.New(appLog.WriterLevel(logrus.WarnLevel), "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == config.DriverSQLite {
		// One connection keeps ":memory:" databases and foreign-key pragmas consistent.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	appLog.WithField("driver", driver).Info("Database connection established.")
	return db, nil
}

// Migrate creates or updates the schema and installs the newest-games routine.
func Migrate(db *gorm.DB, newestLimit int) error {
	err := db.AutoMigrate(
		&models.Game{},
		&models.Genre{},
		&models.Platform{},
		&models.GameGenre{},
		&models.GamePlatform{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := installNewestGames(db, newestLimit); err != nil {
		return fmt.Errorf("failed to install %s: %w", NewestGamesRoutine, err)
	}
	return nil
}

// Ping checks that the store is reachable.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
