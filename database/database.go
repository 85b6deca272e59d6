package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration above which GORM logs a query as slow.
const SlowQueryThreshold = 200 * time.Millisecond

// Open opens a database for the given DSN.
// "memory" or "" opens a shared in-memory SQLite database, postgres:// URLs open
// Postgres, anything else is treated as a SQLite file path.
func Open(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             SlowQueryThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	gormConfig := &gorm.Config{Logger: gormLogger}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case dsn == "memory" || dsn == "":
		log.Println("INFO: [Database] Initializing in-memory SQLite database (DSN: 'memory' or empty).")
		db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		log.Println("INFO: [Database] Initializing Postgres database.")
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	default:
		log.Printf("INFO: [Database] Initializing file-based SQLite database at DSN: '%s'.", dsn)
		dbDir := filepath.Dir(dsn)
		if dbDir != "." && dbDir != "/" {
			if _, statErr := os.Stat(dbDir); os.IsNotExist(statErr) {
				if mkdirErr := os.MkdirAll(dbDir, 0755); mkdirErr != nil {
					log.Printf("ERROR: [Database] Failed to create database directory '%s': %v", dbDir, mkdirErr)
					return nil, fmt.Errorf("failed to create database directory '%s': %w", dbDir, mkdirErr)
				}
				log.Printf("INFO: [Database] Created database directory '%s'.", dbDir)
			}
		}
		db, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	}
	if err != nil {
		log.Printf("ERROR: [Database] Failed to connect to database: %v", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("INFO: [Database] Database connection established successfully.")
	return db, nil
}

// Migrate creates or updates every table the coach backend uses.
func Migrate(db *gorm.DB) error {
	log.Println("INFO: [Database] Running database migrations...")
	err := db.AutoMigrate(
		&models.Profile{},
		&models.WeeklyPlan{},
		&models.CalendarAction{},
		&models.CatalogExercise{},
		&models.Measurement{},
		&models.SeriesLog{},
		&models.Meal{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Printf("ERROR: [Database] Auto-migration failed: %v", err)
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	log.Println("INFO: [Database] Database migration completed.")
	return nil
}
