// Package sqlite implements the account and role repositories on top of a
// SQLite database accessed through GORM. Uniqueness on email and phone is
// enforced by unique indexes; conflicting concurrent creation of the same
// account is serialized by the database and surfaced as a duplicate-key
// error.
package sqlite

import (
	"fmt"
	"os"
	"path/filepath"

	driver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config captures the minimal settings required to open the database.
type Config struct {
	Path string
}

// Connect opens (creating if needed) the SQLite database and migrates the
// account schema.
func Connect(cfg Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create data directory: %w", err)
		}
	}

	db, err := gorm.Open(driver.Open(cfg.Path), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	if err := db.AutoMigrate(&userModel{}, &roleModel{}); err != nil {
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return db, nil
}
