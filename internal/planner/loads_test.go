package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplanner/internal/config"
	"loadplanner/internal/ports"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Weight.TexasMax = 52000
	cfg.Weight.TexasMin = 47000
	cfg.Weight.OtherMax = 48000
	cfg.Weight.OtherMin = 44000
	cfg.Routing.SoftFullRatio = 0.98
	cfg.Routing.RemainderSafetyBound = 100
	cfg.Routing.TopperEpsilon = 1e-4
	cfg.Geocoder.WorkerCount = 4
	cfg.Geocoder.DetourFactor = 1.25
	cfg.Geocoder.AvgSpeedMph = 45
	cfg.VRP.MaxWeightPerTruck = 52000
	cfg.VRP.MaxDriveTimeMinutes = 720
	cfg.VRP.ServiceTimePerStopMinutes = 30
	cfg.VRP.MaxStopsPerTruck = 20
	cfg.VRP.MaxTrucks = 50
	cfg.VRP.WallClockSec = 5
	cfg.VRP.LargeMatrixCutoff = 100
	return cfg
}

func TestPlanLoadsPacksRowsAndIndexesSections(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	rows := []ports.RawRow{
		{"SO": "SO1", "Line": "1", "Customer": "Acme", "ShippingCity": "Dallas", "ShippingState": "TX", "ReadyPieces": "10", "ReadyWeight": "20000"},
		{"SO": "SO2", "Line": "1", "Customer": "Acme", "ShippingCity": "Dallas", "ShippingState": "TX", "ReadyPieces": "10", "ReadyWeight": "20000", "LatestDue": "2026-03-01"},
	}

	result, err := PlanLoads(t.Context(), rows, testConfig(), today)

	require.NoError(t, err)
	require.NotEmpty(t, result.Trucks)
	assert.Empty(t, result.Diagnostics.InvalidRows)
	assert.Contains(t, result.Sections, "Late")
	assert.Len(t, result.Assignments, 2)
}

func TestPlanLoadsFailsWhenEveryRowIsInvalid(t *testing.T) {
	rows := []ports.RawRow{
		{"Line": "1", "ReadyPieces": "1", "ReadyWeight": "100"}, // missing SO
	}

	_, err := PlanLoads(t.Context(), rows, testConfig(), time.Now())

	require.Error(t, err)
}

func TestPlanLoadsDropsCreditHoldRows(t *testing.T) {
	rows := []ports.RawRow{
		{"SO": "SO1", "Line": "1", "Customer": "Acme", "ShippingCity": "Dallas", "ShippingState": "TX", "ReadyPieces": "10", "ReadyWeight": "20000", "Credit": "H"},
	}

	result, err := PlanLoads(t.Context(), rows, testConfig(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, 1, result.FilterCounts.DroppedCreditHold)
	assert.Empty(t, result.Trucks)
}
