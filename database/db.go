package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bookstore/internal/config"
	"bookstore/internal/http-api/models"
)

// ConnectDB opens the postgres connection and brings the schema up to date.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		gormLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Borrowing{},
	); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
