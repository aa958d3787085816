package database

import (
	"log"
	"time"

	"github.com/devjyoon/nearmarket/internal/config"
	"github.com/devjyoon/nearmarket/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func Connect(cfg *config.Config) (*DB, error) {
	logLevel := logger.Silent
	if cfg.ServerEnv == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	// Register metrics plugin for Prometheus
	if err := db.Use(&MetricsPlugin{}); err != nil {
		log.Printf("Failed to register metrics plugin: %v", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return &DB{db}, nil
}

// Migrate runs AutoMigrate for all models.
// Note: errors are logged but not fatal - the production schema is owned
// by migrations; AutoMigrate only backfills a dev database.
func Migrate(db *DB) error {
	err := db.AutoMigrate(
		// Marketplace domain
		&models.Category{},
		&models.Listing{},
		&models.Request{},
		&models.MediaAsset{},

		// Leaderboard domain
		&models.UserPoints{},
		&models.LeaderboardRank{},

		// Expiring records
		&models.VerificationCode{},
		&models.GeocodeCache{},
	)
	if err != nil {
		log.Printf("AutoMigrate warning (non-fatal): %v", err)
	}
	return nil
}
