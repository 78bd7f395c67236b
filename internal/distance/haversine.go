// Package distance implements the Distance Matrix Builder (spec §4.8):
// cache-then-provider lookup with a Haversine fallback, represented as a
// gonum/mat.Dense matrix. Ported from
// original_source/backend/app/distance_service.py.
package distance

import (
	"context"
	"math"

	"loadplanner/internal/domain"
	"loadplanner/internal/ports"
)

const earthRadiusKm = 6371.0088
const kmToMiles = 0.621371

// HaversineMiles returns the great-circle distance between two
// coordinates in miles.
func HaversineMiles(a, b domain.Coordinates) float64 {
	dlat := toRadians(b.Lat - a.Lat)
	dlon := toRadians(b.Lon - a.Lon)
	sa := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(sa), math.Sqrt(1-sa))
	return earthRadiusKm * c * kmToMiles
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// DrivingMinutes estimates travel duration from a distance, clamping the
// configured average speed to [10, 75] mph (distance_service.py's
// driving_time_estimate_minutes).
func DrivingMinutes(miles, avgSpeedMph float64) float64 {
	if miles <= 0 {
		return 0
	}
	mph := avgSpeedMph
	if mph < 10 {
		mph = 10
	}
	if mph > 75 {
		mph = 75
	}
	return (miles / mph) * 60
}

// HaversineProvider is a first-class DistanceProvider implementation,
// not a special case inside a client (Design Note 9): great-circle
// distance inflated by DetourFactor, duration derived at AvgSpeedMph.
type HaversineProvider struct {
	DetourFactor float64
	AvgSpeedMph  float64
}

func NewHaversineProvider(detourFactor, avgSpeedMph float64) *HaversineProvider {
	if detourFactor <= 0 {
		detourFactor = 1.25
	}
	if avgSpeedMph <= 0 {
		avgSpeedMph = 45.0
	}
	return &HaversineProvider{DetourFactor: detourFactor, AvgSpeedMph: avgSpeedMph}
}

func (h *HaversineProvider) GetDistance(_ context.Context, origin, destination domain.Coordinates) (domain.DistanceRecord, error) {
	miles := HaversineMiles(origin, destination) * h.DetourFactor
	return domain.DistanceRecord{
		Provider: "haversine",
		Miles:    miles,
		Minutes:  DrivingMinutes(miles, h.AvgSpeedMph),
	}, nil
}

func (h *HaversineProvider) GetMatrix(ctx context.Context, origins, destinations []domain.Coordinates) ([][]domain.DistanceRecord, error) {
	out := make([][]domain.DistanceRecord, len(origins))
	for i, o := range origins {
		row := make([]domain.DistanceRecord, len(destinations))
		for j, d := range destinations {
			rec, _ := h.GetDistance(ctx, o, d)
			row[j] = rec
		}
		out[i] = row
	}
	return out, nil
}

var _ ports.DistanceMatrixProvider = (*HaversineProvider)(nil)
