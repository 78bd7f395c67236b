package ports

import (
	"context"

	"loadplanner/internal/domain"
)

// AddressCache is the boundary the geocoder reads through and
// write-throughs to. Batched by design: a planning job issues one
// GetMany and, at most, one UpsertMany (spec §4.7, §5).
type AddressCache interface {
	GetMany(ctx context.Context, normalizedKeys []string) (map[string]domain.AddressRecord, error)
	UpsertMany(ctx context.Context, records []domain.AddressRecord) error
}

// DistancePairKey identifies one cached distance/time pair.
type DistancePairKey struct {
	OriginKey string
	DestKey   string
	Provider  string
}

// DistanceCache is the boundary the distance-matrix builder reads
// through and write-throughs to (spec §4.8, §5).
type DistanceCache interface {
	GetMany(ctx context.Context, pairs []DistancePairKey) (map[DistancePairKey]domain.DistanceRecord, error)
	UpsertMany(ctx context.Context, records []domain.DistanceRecord) error
}
