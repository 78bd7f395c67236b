package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loadplanner/internal/domain"
)

func TestHaversineMilesKnownDistance(t *testing.T) {
	dallas := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
	houston := domain.Coordinates{Lat: 29.7604, Lon: -95.3698}

	got := HaversineMiles(dallas, houston)

	assert.InDelta(t, 224, got, 10)
}

func TestHaversineMilesZeroForSamePoint(t *testing.T) {
	p := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
	assert.Equal(t, 0.0, HaversineMiles(p, p))
}

func TestDrivingMinutesClampsSpeed(t *testing.T) {
	assert.Equal(t, 600.0, DrivingMinutes(100, 5))  // clamped up to 10mph floor
	assert.Equal(t, 80.0, DrivingMinutes(100, 1000)) // clamped down to 75mph ceiling
}

func TestDrivingMinutesZeroDistance(t *testing.T) {
	assert.Equal(t, 0.0, DrivingMinutes(0, 45))
}

func TestHaversineProviderAppliesDetourFactor(t *testing.T) {
	p := NewHaversineProvider(1.25, 45)
	dallas := domain.Coordinates{Lat: 32.7767, Lon: -96.7970}
	houston := domain.Coordinates{Lat: 29.7604, Lon: -95.3698}

	rec, err := p.GetDistance(t.Context(), dallas, houston)

	assert.NoError(t, err)
	assert.Equal(t, "haversine", rec.Provider)
	assert.InDelta(t, HaversineMiles(dallas, houston)*1.25, rec.Miles, 1e-9)
}

func TestHaversineProviderDefaultsWhenUnset(t *testing.T) {
	p := NewHaversineProvider(0, 0)
	assert.Equal(t, 1.25, p.DetourFactor)
	assert.Equal(t, 45.0, p.AvgSpeedMph)
}
