package cache

import (
	"context"
	"database/sql"
	"fmt"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

// PostgresDistanceCache implements ports.DistanceCache, generalizing
// erenceh-delivery-route-api/internal/adapters/cache/sql_distance_cache.go's
// single-origin ANY($1::text[]) lookup to the (origin, dest, provider)
// composite key the distance matrix builder needs. Postgres zips
// same-length unnest() calls positionally in a SELECT list, which lets
// one round trip resolve the whole batch instead of one query per pair.
type PostgresDistanceCache struct {
	DB *sql.DB
}

func NewPostgresDistanceCache(db *sql.DB) *PostgresDistanceCache {
	return &PostgresDistanceCache{DB: db}
}

func (c *PostgresDistanceCache) GetMany(ctx context.Context, pairs []ports.DistancePairKey) (map[ports.DistancePairKey]domain.DistanceRecord, error) {
	out := make(map[ports.DistancePairKey]domain.DistanceRecord, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	origins := make([]string, len(pairs))
	dests := make([]string, len(pairs))
	providers := make([]string, len(pairs))
	for i, p := range pairs {
		origins[i] = p.OriginKey
		dests[i] = p.DestKey
		providers[i] = p.Provider
	}

	rows, err := c.DB.QueryContext(ctx, `
		SELECT d.origin_key, d.dest_key, d.provider, d.miles, d.minutes
		FROM distances d
		JOIN (
			SELECT unnest($1::text[]) AS origin_key,
			       unnest($2::text[]) AS dest_key,
			       unnest($3::text[]) AS provider
		) pairs
		ON d.origin_key = pairs.origin_key
		AND d.dest_key = pairs.dest_key
		AND d.provider = pairs.provider`, origins, dests, providers)
	if err != nil {
		return nil, fmt.Errorf("distance cache lookup: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec domain.DistanceRecord
		if err := rows.Scan(&rec.OriginKey, &rec.DestKey, &rec.Provider, &rec.Miles, &rec.Minutes); err != nil {
			return nil, fmt.Errorf("distance cache scan: %w", err)
		}
		out[ports.DistancePairKey{OriginKey: rec.OriginKey, DestKey: rec.DestKey, Provider: rec.Provider}] = rec
	}
	return out, rows.Err()
}

func (c *PostgresDistanceCache) UpsertMany(ctx context.Context, records []domain.DistanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("distance cache upsert begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO distances (origin_key, dest_key, provider, miles, minutes)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (origin_key, dest_key, provider) DO UPDATE SET
			miles = EXCLUDED.miles,
			minutes = EXCLUDED.minutes`)
	if err != nil {
		return fmt.Errorf("distance cache upsert prepare: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.OriginKey, rec.DestKey, rec.Provider, rec.Miles, rec.Minutes); err != nil {
			return fmt.Errorf("distance cache upsert exec %q->%q: %w", rec.OriginKey, rec.DestKey, err)
		}
	}

	return tx.Commit()
}
