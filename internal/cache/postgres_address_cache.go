package cache

import (
	"context"
	"database/sql"
	"fmt"

	"loadplanner/internal/domain"
)

// PostgresAddressCache implements ports.AddressCache against the
// addresses table, generalizing
// erenceh-delivery-route-api/internal/adapters/cache/sql_geocode_cache.go's
// ANY($1::text[]) batch lookup and ON CONFLICT DO UPDATE upsert from a
// bare coordinates map to the full domain.AddressRecord shape.
type PostgresAddressCache struct {
	DB *sql.DB
}

func NewPostgresAddressCache(db *sql.DB) *PostgresAddressCache {
	return &PostgresAddressCache{DB: db}
}

func (c *PostgresAddressCache) GetMany(ctx context.Context, normalizedKeys []string) (map[string]domain.AddressRecord, error) {
	out := make(map[string]domain.AddressRecord, len(normalizedKeys))
	if len(normalizedKeys) == 0 {
		return out, nil
	}

	rows, err := c.DB.QueryContext(ctx, `
		SELECT normalized_key, street, city, state, zip, country,
		       latitude, longitude, confidence, provider
		FROM addresses
		WHERE normalized_key = ANY($1::text[])`, normalizedKeys)
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

func (c *PostgresAddressCache) UpsertMany(ctx context.Context, records []domain.AddressRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("address cache upsert begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO addresses (normalized_key, street, city, state, zip, country, latitude, longitude, confidence, provider)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (normalized_key) DO UPDATE SET
			street = EXCLUDED.street,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			zip = EXCLUDED.zip,
			country = EXCLUDED.country,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			confidence = EXCLUDED.confidence,
			provider = EXCLUDED.provider`)
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
