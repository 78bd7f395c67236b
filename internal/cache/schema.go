package cache

import (
	"database/sql"
	"fmt"
)

// Dialect selects the flavor of DDL and conflict syntax InitSchema
// emits, since the cache package serves both a Postgres production
// backend and a SQLite local/dev one.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// InitSchema creates the addresses and distances cache tables,
// generalizing
// erenceh-delivery-route-api/internal/adapters/repositories/sqlite_init.go's
// transactional CREATE TABLE IF NOT EXISTS pattern from the single
// geocode_cache/distance_cache tables to the richer AddressRecord /
// DistanceRecord columns this module's cache adapters read and write.
func InitSchema(db *sql.DB, dialect Dialect) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("cache init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var statements []string
	switch dialect {
	case Postgres:
		statements = []string{
			`CREATE TABLE IF NOT EXISTS addresses (
				normalized_key TEXT PRIMARY KEY,
				street TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				zip TEXT NOT NULL,
				country TEXT NOT NULL,
				latitude DOUBLE PRECISION,
				longitude DOUBLE PRECISION,
				confidence DOUBLE PRECISION,
				provider TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS distances (
				origin_key TEXT NOT NULL,
				dest_key TEXT NOT NULL,
				provider TEXT NOT NULL,
				miles DOUBLE PRECISION NOT NULL,
				minutes DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (origin_key, dest_key, provider)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_distances_dest_origin ON distances (dest_key, origin_key)`,
		}
	case SQLite:
		statements = []string{
			`CREATE TABLE IF NOT EXISTS addresses (
				normalized_key TEXT PRIMARY KEY,
				street TEXT NOT NULL,
				city TEXT NOT NULL,
				state TEXT NOT NULL,
				zip TEXT NOT NULL,
				country TEXT NOT NULL,
				latitude REAL,
				longitude REAL,
				confidence REAL,
				provider TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS distances (
				origin_key TEXT NOT NULL,
				dest_key TEXT NOT NULL,
				provider TEXT NOT NULL,
				miles REAL NOT NULL,
				minutes REAL NOT NULL,
				PRIMARY KEY (origin_key, dest_key, provider)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_distances_dest_origin ON distances (dest_key, origin_key)`,
		}
	default:
		return fmt.Errorf("cache init schema: unknown dialect %q", dialect)
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("cache init schema: exec statement #%d: %w", i+1, err)
		}
	}

	return tx.Commit()
}
