// Package bootstrap wires the concrete cache and provider adapters
// behind their ports, shared by cmd/planner (HTTP server) and
// cmd/planctl (batch CLI) so both entry points assemble the same
// planner.Dependencies from one place.
package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"loadplanner/internal/cache"
	"loadplanner/internal/config"
	"loadplanner/internal/distance"
	"loadplanner/internal/geocode"
	"loadplanner/internal/planner"
	"loadplanner/internal/platform/db"
	"loadplanner/internal/ports"
)

// OpenDatabase opens and schema-initializes the cache database named by
// cfg.Database, returning the dialect InitSchema selected so callers
// don't have to re-derive it from the driver string.
func OpenDatabase(cfg *config.Config) (*sql.DB, cache.Dialect, error) {
	database, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, "", fmt.Errorf("bootstrap: open database: %w", err)
	}

	dialect := cache.SQLite
	if cfg.Database.Driver == "postgres" {
		dialect = cache.Postgres
	}

	if err := cache.InitSchema(database, dialect); err != nil {
		database.Close()
		return nil, "", fmt.Errorf("bootstrap: init schema: %w", err)
	}

	return database, dialect, nil
}

// Dependencies assembles planner.Dependencies from an open database and
// the GOOGLE_GEOCODING_API_KEY / ORS_API_KEY environment variables.
// Either provider is left nil (cache-only / Haversine-only) when its key
// is unset, so a dependency-less dry run still returns a result instead
// of failing outright.
func Dependencies(database *sql.DB, dialect cache.Dialect) planner.Dependencies {
	return planner.Dependencies{
		AddressCache:     addressCache(database, dialect),
		DistanceCache:    distanceCache(database, dialect),
		Geocoder:         geocoder(),
		DistanceProvider: distanceProvider(),
	}
}

func addressCache(database *sql.DB, dialect cache.Dialect) ports.AddressCache {
	if dialect == cache.Postgres {
		return cache.NewPostgresAddressCache(database)
	}
	return cache.NewSqliteAddressCache(database)
}

func distanceCache(database *sql.DB, dialect cache.Dialect) ports.DistanceCache {
	if dialect == cache.Postgres {
		return cache.NewPostgresDistanceCache(database)
	}
	return cache.NewSqliteDistanceCache(database)
}

func geocoder() ports.GeocodingProvider {
	key := strings.TrimSpace(os.Getenv("GOOGLE_GEOCODING_API_KEY"))
	if key == "" {
		slog.Warn("GOOGLE_GEOCODING_API_KEY not set, geocoding limited to cache hits")
		return nil
	}
	return geocode.NewGoogleProvider(key)
}

func distanceProvider() ports.DistanceMatrixProvider {
	key := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if key == "" {
		slog.Warn("ORS_API_KEY not set, distance matrix limited to cache hits and haversine estimate")
		return nil
	}
	return distance.NewORSProvider(key)
}
