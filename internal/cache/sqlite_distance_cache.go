package cache

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

// SqliteDistanceCache mirrors PostgresDistanceCache for SQLite. SQLite
// has no unnest/array type, so the composite-key batch lookup is built
// as one "(origin_key = ? AND dest_key = ? AND provider = ?)" clause
// per pair OR'd together, same shape as
// sqlite_distance_cache.go's manual placeholder construction.
type SqliteDistanceCache struct {
	DB *sql.DB
}

func NewSqliteDistanceCache(db *sql.DB) *SqliteDistanceCache {
	return &SqliteDistanceCache{DB: db}
}

func (c *SqliteDistanceCache) GetMany(ctx context.Context, pairs []ports.DistancePairKey) (map[ports.DistancePairKey]domain.DistanceRecord, error) {
	out := make(map[ports.DistancePairKey]domain.DistanceRecord, len(pairs))
	if len(pairs) == 0 {
		return out, nil
	}

	clauses := make([]string, len(pairs))
	args := make([]any, 0, len(pairs)*3)
	for i, p := range pairs {
		clauses[i] = "(origin_key = ? AND dest_key = ? AND provider = ?)"
		args = append(args, p.OriginKey, p.DestKey, p.Provider)
	}

	query := fmt.Sprintf(`
		SELECT origin_key, dest_key, provider, miles, minutes
		FROM distances
		WHERE %s`, strings.Join(clauses, " OR "))

	rows, err := c.DB.QueryContext(ctx, query, args...)
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

func (c *SqliteDistanceCache) UpsertMany(ctx context.Context, records []domain.DistanceRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("distance cache upsert begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO distances (origin_key, dest_key, provider, miles, minutes)
		VALUES (?, ?, ?, ?, ?)`)
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
