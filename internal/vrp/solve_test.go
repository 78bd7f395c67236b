package vrp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"loadplanner/internal/domain"
)

// uniformMinutes builds an (n+1)x(n+1) minutes matrix (depot at 0) with
// every off-diagonal leg costing the same duration.
func uniformMinutes(n int, leg float64) *mat.Dense {
	m := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n+1; i++ {
		for j := 0; j < n+1; j++ {
			if i != j {
				m.Set(i, j, leg)
			}
		}
	}
	return m
}

// Scenario F (spec §8): a stop too heavy for any truck is dropped with a
// diagnostic reason while the remaining stops are routed normally.
func TestSolveDropsStopOverCapacity(t *testing.T) {
	stops := []domain.Stop{
		{NormalizedKey: "a", Weight: 20000, Pieces: 10},
		{NormalizedKey: "b", Weight: 20000, Pieces: 10},
		{NormalizedKey: "c", Weight: 60000, Pieces: 30},
	}
	minutes := uniformMinutes(len(stops), 10)
	miles := uniformMinutes(len(stops), 5)
	params := DefaultParams()

	routes, dropped := Solve(t.Context(), stops, miles, minutes, params)

	require.Len(t, dropped, 1)
	assert.Equal(t, 2, dropped[0].StopIndex)
	assert.Equal(t, domain.ReasonWeightExceedsCapacity, dropped[0].Reason)

	require.Len(t, routes, 1)
	assert.ElementsMatch(t, []int{0, 1}, routes[0].StopSequence)
	assert.Equal(t, 40000.0, routes[0].TotalWeight)
}

func TestSolveDropsStopExceedingRoundTripTime(t *testing.T) {
	stops := []domain.Stop{
		{NormalizedKey: "near", Weight: 1000, Pieces: 1},
		{NormalizedKey: "far", Weight: 1000, Pieces: 1},
	}
	minutes := uniformMinutes(len(stops), 10)
	minutes.Set(0, 2, 400)
	minutes.Set(2, 0, 400)
	miles := uniformMinutes(len(stops), 20)
	params := DefaultParams()
	params.MaxDriveTimeMinutes = 100

	_, dropped := Solve(t.Context(), stops, miles, minutes, params)

	require.Len(t, dropped, 1)
	assert.Equal(t, 1, dropped[0].StopIndex)
	assert.Equal(t, domain.ReasonRoundtripExceedsLimit, dropped[0].Reason)
}

func TestSolveSplitsAcrossMultipleTrucksWhenCapacityForces(t *testing.T) {
	stops := []domain.Stop{
		{NormalizedKey: "a", Weight: 30000, Pieces: 10},
		{NormalizedKey: "b", Weight: 30000, Pieces: 10},
	}
	minutes := uniformMinutes(len(stops), 10)
	miles := uniformMinutes(len(stops), 5)
	params := DefaultParams()

	routes, dropped := Solve(t.Context(), stops, miles, minutes, params)

	assert.Empty(t, dropped)
	require.Len(t, routes, 2)
}

// asymmetricMinutes builds an (n+1)x(n+1) matrix (depot at 0) where every
// off-diagonal leg cost is distinct and direction-sensitive (10*row+col),
// so indexing a stop by the wrong column reads a detectably wrong value
// instead of silently matching a uniform matrix.
func asymmetricMinutes(n int) *mat.Dense {
	m := mat.NewDense(n+1, n+1, nil)
	for i := 0; i < n+1; i++ {
		for j := 0; j < n+1; j++ {
			if i != j {
				m.Set(i, j, float64(10*i+j))
			}
		}
	}
	return m
}

// A middle stop (original index 1 of 4) is dropped for excess weight; the
// remaining stops must still be looked up by their original matrix
// columns, not by their position in the post-filter routable slice.
func TestSolveDropsMiddleStopKeepsMatrixAlignmentForSurvivors(t *testing.T) {
	stops := []domain.Stop{
		{NormalizedKey: "a", Weight: 1000, Pieces: 1},
		{NormalizedKey: "b", Weight: 999999, Pieces: 1},
		{NormalizedKey: "c", Weight: 1000, Pieces: 1},
		{NormalizedKey: "d", Weight: 1000, Pieces: 1},
	}
	minutes := asymmetricMinutes(len(stops))
	miles := asymmetricMinutes(len(stops))
	params := DefaultParams()
	params.WallClockSec = -1 // disable 2-opt so the greedy construction order is the asserted one

	routes, dropped := Solve(t.Context(), stops, miles, minutes, params)

	require.Len(t, dropped, 1)
	assert.Equal(t, 1, dropped[0].StopIndex)
	assert.Equal(t, domain.ReasonWeightExceedsCapacity, dropped[0].Reason)

	require.Len(t, routes, 1)
	assert.Equal(t, []int{0, 2, 3}, routes[0].StopSequence)
	assert.Equal(t, 178.0, routes[0].TotalMinutes)
	assert.Equal(t, 88.0, routes[0].TotalMiles)
}

func TestSolveReturnsNoRoutesWhenEverythingDropped(t *testing.T) {
	stops := []domain.Stop{{NormalizedKey: "a", Weight: 999999, Pieces: 1}}
	minutes := uniformMinutes(len(stops), 10)
	miles := uniformMinutes(len(stops), 5)

	routes, dropped := Solve(t.Context(), stops, miles, minutes, DefaultParams())

	assert.Empty(t, routes)
	require.Len(t, dropped, 1)
}
