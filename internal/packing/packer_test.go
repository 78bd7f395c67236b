package packing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loadplanner/internal/domain"
)

func packTestLine(so, line, state string, pieces int, wpp float64) domain.OrderLine {
	return domain.OrderLine{
		SO: so, Line: line, Customer: "Acme", State: state, City: "Dallas",
		ReadyPieces: pieces, WeightPerPiece: wpp, ReadyWeight: float64(pieces) * wpp,
		Priority: domain.NotDue,
	}
}

// Scenario A (spec §8): single full truck, Texas.
func TestPackGroupSingleFullTruckTexas(t *testing.T) {
	key := domain.GroupKey{Customer: "Acme", State: "TX", City: "Dallas"}
	lines := []domain.OrderLine{
		packTestLine("SO1", "L1", "TX", 10, 2000),
		packTestLine("SO1", "L2", "TX", 5, 3000),
		packTestLine("SO2", "L1", "TX", 2, 2500),
	}
	weightCfg := domain.DefaultWeightConfig()
	next := 1

	result := PackGroup(key, lines, weightCfg, DefaultConfig(), time.Now(), &next)

	require.Empty(t, result.Unroutable)
	require.Empty(t, result.SafetyBound)
	require.Len(t, result.Trucks, 1)

	truck := result.Trucks[0]
	assert.Equal(t, 40000.0, truck.TotalWeight)
	assert.Equal(t, 17, truck.TotalPieces)
	assert.Len(t, truck.Assignments, 3)
	for _, a := range truck.Assignments {
		assert.False(t, a.IsRemainder)
	}
}

// Scenario B (spec §8): split by capacity, with a remainder iteration.
func TestPackGroupSplitByCapacity(t *testing.T) {
	key := domain.GroupKey{Customer: "Acme", State: "CA", City: "Fresno"}
	lines := []domain.OrderLine{packTestLine("SO1", "L1", "CA", 30, 2000)}
	weightCfg := domain.DefaultWeightConfig()
	next := 1

	result := PackGroup(key, lines, weightCfg, DefaultConfig(), time.Now(), &next)

	require.Len(t, result.Trucks, 2)

	first := result.Trucks[0]
	assert.Equal(t, 24, first.TotalPieces)
	assert.Equal(t, 48000.0, first.TotalWeight)
	require.Len(t, first.Assignments, 1)
	assert.Equal(t, "", first.Assignments[0].LineSuffix)

	second := result.Trucks[1]
	assert.Equal(t, 6, second.TotalPieces)
	assert.Equal(t, 12000.0, second.TotalWeight)
	require.Len(t, second.Assignments, 1)
	assert.Equal(t, "-R1", second.Assignments[0].LineSuffix)
	assert.True(t, second.Assignments[0].IsRemainder)
}

// Scenario C (spec §8): a late line forces finalize before a not-yet-due
// line can share its truck.
func TestPackGroupLateMixingBlock(t *testing.T) {
	key := domain.GroupKey{Customer: "Acme", State: "CA", City: "Fresno"}
	yesterday := time.Now().AddDate(0, 0, -1)
	inFiveDays := time.Now().AddDate(0, 0, 5)

	late := packTestLine("SO1", "L1", "CA", 1, 10000)
	late.IsLate = true
	late.EarliestDue = &yesterday
	late.Priority = domain.Late

	notYetDue := packTestLine("SO2", "L1", "CA", 1, 10000)
	notYetDue.EarliestDue = &inFiveDays
	notYetDue.Priority = domain.WithinWindow

	weightCfg := domain.DefaultWeightConfig()
	next := 1

	result := PackGroup(key, []domain.OrderLine{late, notYetDue}, weightCfg, DefaultConfig(), time.Now(), &next)

	require.Len(t, result.Trucks, 2)
	assert.Equal(t, 10000.0, result.Trucks[0].TotalWeight)
	assert.Equal(t, 10000.0, result.Trucks[1].TotalWeight)
	assert.True(t, result.Trucks[0].ContainsLate)
	assert.False(t, result.Trucks[1].ContainsLate)
}

func TestPackGroupUnroutableWhenPieceWeightExceedsCapacity(t *testing.T) {
	key := domain.GroupKey{Customer: "Acme", State: "TX", City: "Dallas"}
	lines := []domain.OrderLine{packTestLine("SO1", "L1", "TX", 1, 999999)}
	weightCfg := domain.DefaultWeightConfig()
	next := 1

	result := PackGroup(key, lines, weightCfg, DefaultConfig(), time.Now(), &next)

	assert.Empty(t, result.Trucks)
	require.Len(t, result.Unroutable, 1)
	assert.Equal(t, "piece_weight_exceeds_truck_capacity", result.Unroutable[0].Reason)
}

func TestPackGroupTruckNumbersAreGloballySequential(t *testing.T) {
	weightCfg := domain.DefaultWeightConfig()
	next := 5

	result := PackGroup(
		domain.GroupKey{Customer: "Acme", State: "TX", City: "Dallas"},
		[]domain.OrderLine{packTestLine("SO1", "L1", "TX", 1, 1000)},
		weightCfg, DefaultConfig(), time.Now(), &next,
	)

	require.Len(t, result.Trucks, 1)
	assert.Equal(t, 5, result.Trucks[0].TruckNumber)
	assert.Equal(t, 6, next)
}
