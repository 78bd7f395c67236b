// Package planner is the composition root that wires Normalizer ->
// Filter -> Bin Packer -> Cross-Bucket Topper (PlanLoads) and, on top
// of that, Address Aggregator -> Distance Matrix -> VRP Solver
// (PlanRoutes). It plays the same role
// erenceh-delivery-route-api/internal/api/handlers/plans.go's
// PlanHandler.Plan does, decomposed into the two entry points spec.md
// §4.10 names so both the HTTP API and the CLI can drive either stage
// independently.
package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"loadplanner/internal/config"
	"loadplanner/internal/domain"
	"loadplanner/internal/filter"
	"loadplanner/internal/groupkey"
	"loadplanner/internal/normalize"
	"loadplanner/internal/obs"
	"loadplanner/internal/packing"
	"loadplanner/internal/planerr"
	"loadplanner/internal/ports"
	"loadplanner/internal/topper"
)

// LoadPlanResult is PlanLoads' complete output: every finalized truck,
// the flattened assignment list, the bucket->truckNumbers index, and
// every non-fatal condition encountered along the way.
type LoadPlanResult struct {
	Trucks       []domain.Truck
	Assignments  []domain.Assignment
	Sections     map[string][]int
	FilterCounts filter.Counts
	Diagnostics  domain.Diagnostics
}

// PlanLoads runs the load-planning half of the pipeline: filter gates,
// per-row normalization, group-key partitioning, per-group bin packing,
// and the cross-bucket topping pass. today anchors every due-date
// comparison (normalize.Today(time.Now()) in production, a fixed
// instant in tests).
func PlanLoads(ctx context.Context, rows []ports.RawRow, cfg *config.Config, today time.Time) (result LoadPlanResult, err error) {
	defer obs.Time(ctx, "plan_loads")(&err)

	filtered, counts := filter.Apply(rows, filter.Options{AllowedPlanningWhse: cfg.AllowedPlanningWhse})
	result.FilterCounts = counts

	lines := make([]domain.OrderLine, 0, len(filtered))
	for _, row := range filtered {
		line, nerr := normalize.Row(row, today)
		if nerr != nil {
			result.Diagnostics.AddInvalidRow(row["SO"], row["Line"], nerr.Error())
			continue
		}
		lines = append(lines, line)
	}

	groups := make(map[[5]string][]domain.OrderLine)
	keys := make(map[[5]string]domain.GroupKey)
	for _, l := range lines {
		gk := groupkey.Build(l)
		cmp := gk.Comparable()
		groups[cmp] = append(groups[cmp], l)
		keys[cmp] = gk
	}

	order := make([][5]string, 0, len(groups))
	for cmp := range groups {
		order = append(order, cmp)
	}
	sort.Slice(order, func(i, j int) bool {
		return lessComparable(order[i], order[j])
	})

	weightCfg := cfg.Weight.ToDomain()
	packingCfg := packing.Config{SoftFullRatio: cfg.Routing.SoftFullRatio, RemainderSafetyBound: cfg.Routing.RemainderSafetyBound}

	var allTrucks []domain.Truck
	nextTruckNumber := 1
	for _, cmp := range order {
		gr := packing.PackGroup(keys[cmp], groups[cmp], weightCfg, packingCfg, today, &nextTruckNumber)
		allTrucks = append(allTrucks, gr.Trucks...)
		for _, u := range gr.Unroutable {
			result.Diagnostics.AddUnroutable(u.SO, u.Line, u.Reason)
		}
		for _, u := range gr.SafetyBound {
			result.Diagnostics.AddUnroutable(u.SO, u.Line, u.Reason)
		}
	}

	topperCfg := topper.Config{SoftFullRatio: cfg.Routing.SoftFullRatio, Epsilon: cfg.Routing.TopperEpsilon}
	result.Trucks = topper.Apply(allTrucks, topperCfg, today)

	result.Sections = make(map[string][]int)
	for _, t := range result.Trucks {
		bucket := t.Bucket.String()
		result.Sections[bucket] = append(result.Sections[bucket], t.TruckNumber)
		result.Assignments = append(result.Assignments, t.Assignments...)
		obs.TrucksTotal.WithLabelValues(boolLabel(t.ContainsLate)).Inc()
	}
	for bucket := range result.Sections {
		sort.Ints(result.Sections[bucket])
	}

	if len(rows) > 0 && len(lines) == 0 && len(result.Diagnostics.InvalidRows) == len(rows) {
		return result, fmt.Errorf("plan loads: every row was invalid: %w", planerr.InvalidInput)
	}

	return result, nil
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// lessComparable provides a total, deterministic order over GroupKey's
// comparable form so truck numbering never depends on Go's randomized
// map iteration order (spec §5).
func lessComparable(a, b [5]string) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
