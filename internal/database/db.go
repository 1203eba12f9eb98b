// Package database opens the SQLite calibration database and provides the
// calibration point store.
package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/edgard/tgidbot/migrations"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

var (
	// ErrNoConnection is returned when migrations are requested without a
	// database handle.
	ErrNoConnection = errors.New("calibration database is not open")

	// ErrNoName is returned when the migration driver gets an empty file name.
	ErrNoName = errors.New("calibration database file name is empty")
)

// NewDB opens the calibration database at dbPath and brings its schema and
// seed rows up to date. The returned pool holds a single connection.
func NewDB(dbPath string, logger *slog.Logger) (*sqlx.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "database", "path", dbPath)

	db, err := sqlx.Connect("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open calibration database: %w", err)
	}

	// One connection: writers would otherwise hit SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ApplyMigrations(db.DB, ExtractDBNameFromPath(dbPath), log); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("Calibration database left open after failed migration", "error", closeErr)
		}
		return nil, err
	}

	log.Info("Calibration database ready")
	return db, nil
}

// CloseDB releases the pool. A nil db is ignored.
func CloseDB(db *sqlx.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With("component", "database")
	if err := db.Close(); err != nil {
		log.Warn("Calibration database did not close cleanly", "error", err)
		return
	}
	log.Debug("Calibration database closed")
}

// ApplyMigrations runs the embedded calibration migrations against db and
// logs the resulting schema version.
func ApplyMigrations(db *sql.DB, dbName string, logger *slog.Logger) error {
	switch {
	case db == nil:
		return ErrNoConnection
	case dbName == "":
		return ErrNoName
	}
	if logger == nil {
		logger = slog.Default()
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to read embedded calibration migrations: %w", err)
	}
	drv, err := sqlite3.WithInstance(db, &sqlite3.Config{DatabaseName: dbName})
	if err != nil {
		return fmt.Errorf("failed to prepare calibration migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("failed to prepare calibration migrations: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate calibration schema: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil {
		return fmt.Errorf("failed to read calibration schema version: %w", verr)
	}
	if err == nil {
		logger.Info("Calibration schema migrated", "version", version)
	} else {
		logger.Debug("Calibration schema unchanged", "version", version, "dirty", dirty)
	}
	return nil
}

// ExtractDBNameFromPath turns a SQLite DSN such as
// "file:/data/cal%20db.db?cache=shared" into the bare file name the
// migration driver expects.
func ExtractDBNameFromPath(path string) string {
	name, _, _ := strings.Cut(strings.TrimPrefix(path, "file:"), "?")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
