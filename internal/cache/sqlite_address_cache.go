package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"loadplanner/internal/domain"
)

// SqliteAddressCache mirrors PostgresAddressCache for the local/dev
// SQLite backend, following
// erenceh-delivery-route-api/internal/adapters/cache/sqlite_geocode_cache.go's
// hand-built "IN (?,?,...)" placeholder list (the SQLite driver has no
// array binding) and INSERT OR REPLACE in place of ON CONFLICT.
type SqliteAddressCache struct {
	DB *sql.DB
}

func NewSqliteAddressCache(db *sql.DB) *SqliteAddressCache {
	return &SqliteAddressCache{DB: db}
}

func (c *SqliteAddressCache) GetMany(ctx context.Context, normalizedKeys []string) (map[string]domain.AddressRecord, error) {
	out := make(map[string]domain.AddressRecord, len(normalizedKeys))
	if len(normalizedKeys) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(normalizedKeys))
	args := make([]any, len(normalizedKeys))
	for i, k := range normalizedKeys {
		placeholders[i] = "?"
		args[i] = k
	}

	query := fmt.Sprintf(`
		SELECT normalized_key, street, city, state, zip, country,
		       latitude, longitude, confidence, provider
		FROM addresses
		WHERE normalized_key IN (%s)`, strings.Join(placeholders, ","))

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("address cache lookup: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.AddressRecord
		if err := rows.Scan(&rec.NormalizedKey, &rec.Street, &rec.City, &rec.State, &rec.Zip, &rec.Country,
			&rec.Latitude, &rec.Longitude, &rec.Confidence, &rec.Provider); err != nil {
			return nil, fmt.Errorf("address cache scan: %w", err)
		}
		out[rec.NormalizedKey] = rec
	}
	return out, rows.Err()
}

func (c *SqliteAddressCache) UpsertMany(ctx context.Context, records []domain.AddressRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("address cache upsert begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO addresses
			(normalized_key, street, city, state, zip, country, latitude, longitude, confidence, provider)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("address cache upsert prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.NormalizedKey, rec.Street, rec.City, rec.State, rec.Zip, rec.Country,
			rec.Latitude, rec.Longitude, rec.Confidence, rec.Provider); err != nil {
			return fmt.Errorf("address cache upsert exec %q: %w", rec.NormalizedKey, err)
		}
	}

	return tx.Commit()
}
