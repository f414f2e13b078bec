package postgres

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"skill-registry.backend/internal/config"
)

var (
	sqlOpen = sql.Open
	dbPing  = func(db *sql.DB) error { return db.Ping() }
)

// NewConnection opens a database/sql handle on the lib/pq driver and verifies it.
func NewConnection(cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sqlOpen("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := dbPing(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	applyPool(db, cfg)
	return db, nil
}

// Open creates the gorm handle used by the server (pgx driver).
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.URL(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	applyPool(sqlDB, cfg)
	return db, nil
}

func applyPool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		db.SetConnMaxLifetime(30 * time.Minute)
	}
}
