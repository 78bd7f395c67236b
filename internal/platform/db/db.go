// Package db opens the planner's SQL handle behind one of the two
// drivers config.DatabaseConfig.Driver names: "postgres" (pgx, for a
// shared deployment) or "sqlite" (modernc.org/sqlite, for local/dev
// runs and cmd/planctl's dry-run mode). Both drivers are registered via
// blank import in cmd/planner and cmd/dbtool, not here, so this package
// never forces the other driver's cgo-free build into a caller that
// only wants one of them.
package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open dials the driver named by driver ("postgres" or "sqlite") at url
// and verifies the connection with a ping.
func Open(driver, url string) (*sql.DB, error) {
	switch driver {
	case "postgres":
		return openPostgres(url)
	case "sqlite":
		return openSqlite(url)
	default:
		return nil, fmt.Errorf("openDB: unknown driver %q (want postgres or sqlite)", driver)
	}
}

func openPostgres(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	// SQLite serializes writers internally; a single open connection
	// avoids SQLITE_BUSY from concurrent writers racing the driver's
	// own locking.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return db, nil
}
