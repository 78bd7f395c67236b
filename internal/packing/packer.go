// Package packing implements the Bin Packer, Remainder Processor, and
// the per-group orchestration between them (spec §4.4, §4.5), ported
// from original_source/backend/app/optimizer.py's process_customer_group
// / process_combinable_group packing loop.
package packing

import (
	"math"
	"sort"
	"time"

	"loadplanner/internal/domain"
)

// GroupResult is everything PackGroup produces for one group key.
type GroupResult struct {
	Trucks      []domain.Truck
	Unroutable  []domain.LineIssue // SO/Line excluded: wpp > every truck's capacity
	SafetyBound []domain.LineIssue // residual lines dropped when the remainder bound was hit
}

// PackGroup packs every OrderLine sharing one GroupKey into a sequence
// of finalized Trucks. nextTruckNumber is shared across every group the
// caller packs, so truck numbering stays globally deterministic under a
// stable group-iteration order (spec §5).
func PackGroup(key domain.GroupKey, lines []domain.OrderLine, weightCfg domain.WeightConfig, cfg Config, today time.Time, nextTruckNumber *int) GroupResult {
	minWeight, maxWeight := weightCfg.CapacityFor(key.State)

	var result GroupResult
	var fresh []packable
	for _, l := range lines {
		if l.WeightPerPiece > maxWeight {
			result.Unroutable = append(result.Unroutable, domain.LineIssue{
				SO: l.SO, Line: l.Line, Reason: "piece_weight_exceeds_truck_capacity",
			})
			continue
		}
		fresh = append(fresh, fromOrderLine(l))
	}
	sort.SliceStable(fresh, func(i, j int) bool { return sortLess(fresh[i], fresh[j]) })

	finalized := make([]domain.Truck, 0, 4)
	open := newOpenTruck()

	finalize := func() {
		if open.isEmpty() {
			return
		}
		finalized = append(finalized, buildTruck(key, minWeight, maxWeight, *nextTruckNumber, open))
		*nextTruckNumber++
		*open = openTruck{}
	}

	queue := fresh
	iteration := 0
	for len(queue) > 0 {
		if iteration > cfg.RemainderSafetyBound {
			for _, pk := range queue {
				result.SafetyBound = append(result.SafetyBound, domain.LineIssue{
					SO: pk.SO, Line: pk.Line, Reason: "remainder_safety_bound_exceeded",
				})
			}
			break
		}

		suffix := ""
		if iteration > 0 {
			suffix = suffixFor(iteration)
		}

		var next []packable
		for _, pk := range queue {
			pk.Suffix = suffix
			if iteration > 0 {
				pk.IsRemainder = true
				pk.Iteration = iteration
			}
			if residual, ok := packOne(pk, open, maxWeight, cfg, today, finalize); ok {
				residual.Iteration = iteration + 1
				next = append(next, residual)
			}
		}

		sort.SliceStable(next, func(i, j int) bool { return sortLess(next[i], next[j]) })
		queue = next
		iteration++
	}

	finalize()
	result.Trucks = finalized
	return result
}

// suffixFor renders the remainder-iteration tag ("-R1", "-R2", ...).
// Strip it for external reports; it is a diagnostic tag only (spec §4.5).
func suffixFor(iteration int) string {
	digits := []byte{}
	n := iteration
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return "-R" + string(digits)
}

// packOne applies one packable against the open truck, finalizing and
// retrying as the spec's packing loop (§4.4 steps 1-6) requires. It
// returns the residual packable still awaiting placement, if any pieces
// were left over.
func packOne(pk packable, open *openTruck, maxWeight float64, cfg Config, today time.Time, finalize func()) (packable, bool) {
	// Step 1: late-mixing precheck, before committing any pieces.
	if !open.isEmpty() {
		if !pk.IsLate && open.containsLate {
			if pk.EarliestDue == nil || pk.EarliestDue.After(today) {
				finalize()
			}
		} else if pk.IsLate && !open.containsLate {
			if open.truckEarliestDue == nil || open.truckEarliestDue.After(today) {
				finalize()
			}
		}
	}

	// Step 2-3: take computation, retried once after a forced finalize.
	for attempt := 0; attempt < 2; attempt++ {
		cap := open.remaining(maxWeight)
		lineWeight := float64(pk.Pieces) * pk.Wpp
		var take int
		if lineWeight <= cap {
			take = pk.Pieces
		} else {
			take = int(math.Floor(cap / pk.Wpp))
		}

		if take == 0 {
			if !open.isEmpty() {
				finalize()
				continue
			}
			// Truck is empty and still can't take even one piece: the
			// line's wpp exceeds maxWeight, which PackGroup already
			// screens out before packOne ever sees a packable. Treat as
			// a zero-progress no-op to avoid an infinite retry.
			return pk, false
		}

		// Step 4: commit.
		open.commit(pk, take)

		// Step 5: residual.
		remaining := pk.Pieces - take
		var residual packable
		haveResidual := false
		if remaining > 0 {
			residual = pk
			residual.Pieces = remaining
			residual.IsRemainder = true
			haveResidual = true
		}

		// Step 6: soft-full finalize.
		if open.weight >= maxWeight*cfg.SoftFullRatio {
			finalize()
		}

		return residual, haveResidual
	}

	return pk, false
}

func buildTruck(key domain.GroupKey, minWeight, maxWeight float64, truckNumber int, open *openTruck) domain.Truck {
	t := domain.Truck{
		TruckNumber: truckNumber,
		GroupKey:    key,
		MinWeight:   minWeight,
		MaxWeight:   maxWeight,
	}
	t.Assignments = make([]domain.Assignment, 0, len(open.assignments))
	for _, d := range open.assignments {
		t.Assignments = append(t.Assignments, domain.Assignment{
			TruckNumber:       truckNumber,
			SO:                d.SO,
			Line:              d.Line,
			LineSuffix:        d.LineSuffix,
			PiecesOnTransport: d.PiecesOnTransport,
			TotalWeight:       d.TotalWeight,
			IsPartial:         d.IsPartial,
			IsRemainder:       d.IsRemainder,
			ParentLine:        d.ParentLine,
			IsLate:            d.IsLate,
			IsOverwidth:       d.IsOverwidth,
			Width:             d.Width,
			Priority:          d.Priority,
			Customer:          d.Customer,
			City:              d.City,
			State:             d.State,
			Zone:              d.Zone,
			Route:             d.Route,
			EarliestDue:       d.EarliestDue,
			LatestDue:         d.LatestDue,
		})
	}
	t.Recompute()
	return t
}
