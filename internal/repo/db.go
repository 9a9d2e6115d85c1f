// Package repo implements the persistence layer over GORM and SQLite (pure
// Go driver). This file holds database bootstrapping and schema migration.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound so services and handlers match one sentinel.
var ErrNotFound = gorm.ErrRecordNotFound

// OpenSQLite opens (or creates) the database file and tunes it for a single
// concurrent writer: WAL journaling, a busy timeout instead of immediate
// SQLITE_BUSY, and a small connection pool.
func OpenSQLite(path string) (*gorm.DB, error) {
	// SQLite reports a missing parent directory as an opaque I/O error;
	// surface it as what it is.
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	} {
		db.Exec(pragma)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return db, nil
}

// AutoMigrate creates or updates the schema for every persisted entity,
// including the counters table backing the sequence allocator.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Space{},
		&domain.Note{},
		&domain.Comment{},
		&domain.Counter{},
	)
}
