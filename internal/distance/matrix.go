package distance

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

// DefaultLargeMatrixCutoff is the point count above which the Haversine
// fallback is always used, regardless of cache/provider availability
// (spec §4.8 step 3; left configurable per Design Note / Open Question).
const DefaultLargeMatrixCutoff = 100

// Matrices bundles the miles and minutes matrices for an N+1 point set:
// depot at index 0, stops at 1..N.
type Matrices struct {
	Miles   *mat.Dense
	Minutes *mat.Dense
}

// Builder constructs the Distance Matrix Builder of spec §4.8.
type Builder struct {
	Cache             ports.DistanceCache
	Provider          ports.DistanceMatrixProvider
	Haversine         *HaversineProvider
	ProviderName      string // cache-key provider tag for live lookups
	LargeMatrixCutoff int
}

func NewBuilder(cache ports.DistanceCache, provider ports.DistanceMatrixProvider, haversine *HaversineProvider, providerName string) *Builder {
	if providerName == "" {
		providerName = "provider"
	}
	return &Builder{Cache: cache, Provider: provider, Haversine: haversine, ProviderName: providerName, LargeMatrixCutoff: DefaultLargeMatrixCutoff}
}

// roundedKey is the (6-decimal-rounded lat/lng) cache key component for
// one coordinate (spec §4.8 "Cache key").
func roundedKey(c domain.Coordinates) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

// Build produces the N+1 x N+1 miles/minutes matrices for points (depot
// at index 0). It never returns an error: a provider failure degrades
// the whole matrix to the Haversine fallback and a cache failure is
// treated as all misses, each recorded in diag rather than aborting the
// request (spec §7 ProviderUnavailable). With no provider or no cache
// configured it fills the matrix from Haversine directly.
func (b *Builder) Build(ctx context.Context, points []domain.Coordinates, diag *domain.Diagnostics) (Matrices, error) {
	n := len(points)
	miles := mat.NewDense(n, n, nil)
	minutes := mat.NewDense(n, n, nil)

	if n > b.LargeMatrixCutoff || b.Provider == nil || b.Cache == nil {
		if n > b.LargeMatrixCutoff {
			diag.AddProviderFallback("distance matrix: haversine fallback (N>large-matrix-cutoff)")
		}
		b.fillHaversine(ctx, points, miles, minutes)
		return Matrices{Miles: miles, Minutes: minutes}, nil
	}

	keys := make([]string, n)
	for i, p := range points {
		keys[i] = roundedKey(p)
	}

	var pairs []ports.DistancePairKey
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			pairs = append(pairs, ports.DistancePairKey{OriginKey: keys[i], DestKey: keys[j], Provider: b.ProviderName})
		}
	}

	hits, err := b.Cache.GetMany(ctx, pairs)
	if err != nil {
		diag.CacheUnavailableOnce = true
		hits = map[ports.DistancePairKey]domain.DistanceRecord{}
	}

	missCount := len(pairs) - len(hits)
	missRatio := 0.0
	if len(pairs) > 0 {
		missRatio = float64(missCount) / float64(len(pairs))
	}

	if missCount > 0 {
		var fresh map[ports.DistancePairKey]domain.DistanceRecord
		var fetchErr error
		if missRatio > 0.5 {
			fresh, fetchErr = b.fetchFullMatrix(ctx, points, keys)
		} else {
			fresh, fetchErr = b.fetchMissingPairs(ctx, points, keys, pairs, hits)
		}

		if fetchErr != nil {
			diag.AddProviderFallback("distance matrix: haversine fallback (provider error)")
			b.fillHaversine(ctx, points, miles, minutes)
			return Matrices{Miles: miles, Minutes: minutes}, nil
		}

		if len(fresh) > 0 {
			records := make([]domain.DistanceRecord, 0, len(fresh))
			for _, v := range fresh {
				records = append(records, v)
			}
			if err := b.Cache.UpsertMany(ctx, records); err != nil {
				diag.CacheUnavailableOnce = true
			}
		}
		for k, v := range fresh {
			hits[k] = v
		}
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			rec, ok := hits[ports.DistancePairKey{OriginKey: keys[i], DestKey: keys[j], Provider: b.ProviderName}]
			if !ok {
				miles.Set(i, j, HaversineMiles(points[i], points[j])*b.Haversine.DetourFactor)
				minutes.Set(i, j, DrivingMinutes(miles.At(i, j), b.Haversine.AvgSpeedMph))
				continue
			}
			miles.Set(i, j, rec.Miles)
			minutes.Set(i, j, rec.Minutes)
		}
	}

	return Matrices{Miles: miles, Minutes: minutes}, nil
}

func (b *Builder) fillHaversine(_ context.Context, points []domain.Coordinates, miles, minutes *mat.Dense) {
	n := len(points)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := HaversineMiles(points[i], points[j]) * b.Haversine.DetourFactor
			miles.Set(i, j, d)
			minutes.Set(i, j, DrivingMinutes(d, b.Haversine.AvgSpeedMph))
		}
	}
}

func (b *Builder) fetchFullMatrix(ctx context.Context, points []domain.Coordinates, keys []string) (map[ports.DistancePairKey]domain.DistanceRecord, error) {
	rows, err := b.Provider.GetMatrix(ctx, points, points)
	if err != nil {
		return nil, err
	}
	out := make(map[ports.DistancePairKey]domain.DistanceRecord, len(points)*len(points))
	for i, row := range rows {
		for j, rec := range row {
			if i == j {
				continue
			}
			rec.OriginKey, rec.DestKey, rec.Provider = keys[i], keys[j], b.ProviderName
			out[ports.DistancePairKey{OriginKey: keys[i], DestKey: keys[j], Provider: b.ProviderName}] = rec
		}
	}
	return out, nil
}

func (b *Builder) fetchMissingPairs(ctx context.Context, points []domain.Coordinates, keys []string, pairs []ports.DistancePairKey, hits map[ports.DistancePairKey]domain.DistanceRecord) (map[ports.DistancePairKey]domain.DistanceRecord, error) {
	index := make(map[string]int, len(keys))
	for i, k := range keys {
		index[k] = i
	}

	out := make(map[ports.DistancePairKey]domain.DistanceRecord)
	for _, pair := range pairs {
		if _, ok := hits[pair]; ok {
			continue
		}
		i, j := index[pair.OriginKey], index[pair.DestKey]
		rec, err := b.Provider.GetDistance(ctx, points[i], points[j])
		if err != nil {
			return nil, err
		}
		rec.OriginKey, rec.DestKey, rec.Provider = pair.OriginKey, pair.DestKey, b.ProviderName
		out[pair] = rec
	}
	return out, nil
}
