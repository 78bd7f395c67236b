package ports

import (
	"context"

	"loadplanner/internal/domain"
)

// DistanceProvider resolves travel distance/duration between two
// coordinates. The Haversine fallback is a first-class implementation of
// this interface, not a special case inside any client (SPEC_FULL.md
// Design Note 9).
type DistanceProvider interface {
	GetDistance(ctx context.Context, origin, destination domain.Coordinates) (domain.DistanceRecord, error)
}

// DistanceMatrixProvider extends DistanceProvider with a batched,
// full-matrix call used when the cache-miss ratio is high (spec §4.8).
type DistanceMatrixProvider interface {
	DistanceProvider
	GetMatrix(ctx context.Context, origins, destinations []domain.Coordinates) ([][]domain.DistanceRecord, error)
}
