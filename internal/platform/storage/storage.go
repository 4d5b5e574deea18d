package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pralay-server-go/internal/platform/config"
	"pralay-server-go/internal/platform/storage/migrations"
)

// Global database instance shared by the repositories.
var db *gorm.DB

// InitDatabase opens the SQLite database and brings the schema up to
// date. Safe to call more than once.
func InitDatabase(cfg config.StorageConfig) error {
	if db != nil {
		return nil
	}

	dataDir := cfg.Dir
	if dataDir == "" {
		dataDir = "./data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	dbFile := cfg.DBFile
	if dbFile == "" {
		dbFile = "pralay.db"
	}
	dbPath := filepath.Join(dataDir, dbFile)

	var err error
	db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// AutoMigrate as a fallback for tables the migrations predate.
	if err := db.AutoMigrate(&ReportRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	migrationManager := NewMigrationManager(db)
	migrationManager.AddMigration(&migrations.Migration001Initial{})

	if err := migrationManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// GetDB returns the global database instance.
func GetDB() *gorm.DB {
	if db == nil {
		panic("database not initialized, call InitDatabase() first")
	}
	return db
}
