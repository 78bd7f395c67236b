package vrp

import (
	"context"
	"time"

	"gonum.org/v1/gonum/mat"

	"loadplanner/internal/domain"
)

// Solve implements spec §4.9: pre-screens stops that can never be
// routed, constructs a first solution per vehicle, improves each route
// with 2-opt under the wall-clock budget, and reports every excluded
// stop with a diagnostic reason. It always returns a result — it never
// errors. The wall-clock budget only gates the 2-opt pass; construction
// always runs to completion. When no stop can be routed, every stop is
// returned in dropped, and the Planner Facade is the one that turns an
// empty, non-trivial result into planerr.RoutingInfeasible.
func Solve(ctx context.Context, stops []domain.Stop, miles, minutes *mat.Dense, params Params) ([]domain.Route, []domain.DroppedStop) {
	deadline := time.Now().Add(time.Duration(params.WallClockSec * float64(time.Second)))

	var dropped []domain.DroppedStop
	var routable []domain.Stop
	var routableOrigIdx []int

	for i, s := range stops {
		if s.Weight > params.MaxWeightPerTruck {
			dropped = append(dropped, domain.DroppedStop{StopIndex: i, Reason: domain.ReasonWeightExceedsCapacity})
			continue
		}
		roundTrip := minutes.At(depotIndex, i+1) + params.ServiceTimePerStopMinutes + minutes.At(i+1, depotIndex)
		if roundTrip > params.MaxDriveTimeMinutes {
			dropped = append(dropped, domain.DroppedStop{StopIndex: i, Reason: domain.ReasonRoundtripExceedsLimit})
			continue
		}
		routable = append(routable, s)
		routableOrigIdx = append(routableOrigIdx, i)
	}

	if len(routable) == 0 {
		return nil, dropped
	}

	vehicleRoutes, unrouted := construct(routable, routableOrigIdx, miles, minutes, params)
	for _, idx := range unrouted {
		dropped = append(dropped, domain.DroppedStop{StopIndex: routableOrigIdx[idx], Reason: domain.ReasonNotRoutedUnderConstraints})
	}

	routes := make([]domain.Route, 0, len(vehicleRoutes))
	for vi, vr := range vehicleRoutes {
		seq := vr.stopIdx
		if time.Now().Before(deadline) {
			seq = twoOptImprove(seq, routableOrigIdx, minutes, params.TwoOptMaxIterations)
		}

		route := domain.Route{TruckID: vi + 1}
		var totalMiles, totalMinutes, totalWeight float64
		var totalPieces int
		last := depotIndex
		for _, local := range seq {
			origIdx := routableOrigIdx[local]
			route.StopSequence = append(route.StopSequence, origIdx)
			totalMiles += miles.At(last, origIdx+1)
			totalMinutes += minutes.At(last, origIdx+1)
			totalWeight += routable[local].Weight
			totalPieces += routable[local].Pieces
			last = origIdx + 1
		}
		totalMiles += miles.At(last, depotIndex)
		totalMinutes += minutes.At(last, depotIndex)
		totalMinutes += float64(len(seq)) * params.ServiceTimePerStopMinutes

		route.TotalMiles = totalMiles
		route.TotalMinutes = totalMinutes
		route.TotalWeight = totalWeight
		route.TotalPieces = totalPieces
		routes = append(routes, route)
	}

	return routes, dropped
}
