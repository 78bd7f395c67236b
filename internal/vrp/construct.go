package vrp

import (
	"gonum.org/v1/gonum/mat"

	"loadplanner/internal/domain"
)

const depotIndex = 0

// vehicleRoute is the construction-time working state for one vehicle:
// stop indices (into the caller's stops slice, NOT matrix columns) in
// visiting order, plus the matrix index of the last visited node.
type vehicleRoute struct {
	stopIdx []int
	weight  float64
	minutes float64 // cumulative drive+service time, excludes the final return-to-depot leg
	current int     // matrix row/col of the last visited node; depotIndex before any stop
}

// construct builds a first-solution via the same greedy minimum-duration
// step erenceh-delivery-route-api's PlanRoute uses, generalized to many
// capacity/time-bounded vehicles instead of one unconstrained one, with
// a lexical tie-break for determinism.
//
// stops is the pre-screened routable subset, not every stop the matrix
// was built over; origIdx[i] is stops[i]'s row/column in miles/minutes
// (so the matrix cell for stops[i] is always origIdx[i]+1, never i+1 —
// the two diverge as soon as any earlier stop was dropped).
func construct(stops []domain.Stop, origIdx []int, miles, minutes *mat.Dense, params Params) (routes []vehicleRoute, dropped []int) {
	n := len(stops)
	unassigned := make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		unassigned[i] = struct{}{}
	}

	for len(unassigned) > 0 && (params.MaxTrucks <= 0 || len(routes) < params.MaxTrucks) {
		route := vehicleRoute{current: depotIndex}

		for {
			if params.MaxStopsPerTruck > 0 && len(route.stopIdx) >= params.MaxStopsPerTruck {
				break
			}

			best := -1
			bestMinutes := -1.0
			for idx := range unassigned {
				candidateMinutes := minutes.At(route.current, origIdx[idx]+1)
				if fits, _ := feasibleAppend(route, stops[idx], origIdx[idx], minutes, params); !fits {
					continue
				}
				if best == -1 || candidateMinutes < bestMinutes ||
					(candidateMinutes == bestMinutes && stops[idx].NormalizedKey < stops[best].NormalizedKey) {
					best = idx
					bestMinutes = candidateMinutes
				}
			}

			if best == -1 {
				break
			}

			legMinutes := minutes.At(route.current, origIdx[best]+1)
			route.stopIdx = append(route.stopIdx, best)
			route.weight += stops[best].Weight
			route.minutes += legMinutes + params.ServiceTimePerStopMinutes
			delete(unassigned, best)
			route.current = origIdx[best] + 1
		}

		if len(route.stopIdx) == 0 {
			break
		}
		routes = append(routes, route)
	}

	for idx := range unassigned {
		dropped = append(dropped, idx)
	}
	return routes, dropped
}

// feasibleAppend reports whether appending candidate (at matrix index
// candidateOrigIdx) to route keeps it within weight capacity and,
// counting the eventual return-to-depot leg, within MaxDriveTimeMinutes.
func feasibleAppend(route vehicleRoute, candidate domain.Stop, candidateOrigIdx int, minutes *mat.Dense, params Params) (bool, float64) {
	if route.weight+candidate.Weight > params.MaxWeightPerTruck {
		return false, 0
	}
	legMinutes := minutes.At(route.current, candidateOrigIdx+1)
	returnMinutes := minutes.At(candidateOrigIdx+1, depotIndex)
	total := route.minutes + legMinutes + params.ServiceTimePerStopMinutes + returnMinutes
	if total > params.MaxDriveTimeMinutes {
		return false, total
	}
	return true, total
}
