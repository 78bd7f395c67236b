package vrp

import "gonum.org/v1/gonum/mat"

// twoOptImprove runs 2-opt local search over one route's stop sequence
// (depot excluded from the slice), ported from
// original_source/backend/app/route_optimizer.py's two_opt_improve:
// repeatedly try reversing a sub-segment, keep the reversal if it
// shortens total travel time, and stop after the first full pass with no
// improvement or after maxIterations passes, whichever comes first.
//
// stopIdx holds indices into the caller's routable-stops slice, not
// matrix columns; the matrix column of stopIdx entry i is origIdx[i]+1,
// matching construct's indexing convention.
func twoOptImprove(stopIdx []int, origIdx []int, minutes *mat.Dense, maxIterations int) []int {
	if len(stopIdx) < 3 {
		return stopIdx
	}

	current := append([]int(nil), stopIdx...)
	routeMinutes := func(r []int) float64 {
		total := minutes.At(depotIndex, origIdx[r[0]]+1)
		for i := 0; i < len(r)-1; i++ {
			total += minutes.At(origIdx[r[i]]+1, origIdx[r[i+1]]+1)
		}
		total += minutes.At(origIdx[r[len(r)-1]]+1, depotIndex)
		return total
	}

	improved := true
	iterations := 0
	for improved && iterations < maxIterations {
		improved = false
		iterations++

		for i := 0; i < len(current)-1; i++ {
			for j := i + 1; j < len(current); j++ {
				candidate := append([]int(nil), current...)
				reverse(candidate[i : j+1])
				if routeMinutes(candidate) < routeMinutes(current) {
					current = candidate
					improved = true
				}
			}
		}
	}

	return current
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
