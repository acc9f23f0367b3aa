package database

import (
	"fmt"
	"pos-service/internal/store"
	"pos-service/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

// InitDB initializes the database connection with configuration and runs migrations
func InitDB(appConfig *config.Config) error {
	var err error

	// Configure GORM logger
	logLevel := logger.Error
	if appConfig.Server.Env == "development" {
		logLevel = logger.Info
	}

	// Create DSN string
	dsn := appConfig.DB.GetDSN()

	// Configure Postgres options
	pgConfig := postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	// Open connection
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get generic database object SQL
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Set connection pool settings from config
	sqlDB.SetMaxIdleConns(appConfig.DB.MaxIdleConns)
	sqlDB.SetMaxOpenConns(appConfig.DB.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(appConfig.DB.ConnMaxLifetime)

	// Run migrations
	if err := db.AutoMigrate(&store.Entry{}); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
