// Package filter applies the business-rule gate pipeline, ported from
// original_source/backend/app/excel_utils.py's apply_routing_filters and
// filter_by_planning_whse.
package filter

import (
	"strconv"
	"strings"

	"loadplanner/internal/ports"
)

// Counts reports how many rows each pipeline stage removed or
// transformed, mirroring the per-stage print() counters of the Python
// original (spec §4.2: "emits counts per stage").
type Counts struct {
	Transformed         int // yes_no == "yes" substitutions
	DroppedCreditHold   int
	DroppedShipHold     int
	DroppedNoPieces     int
	DroppedPlanningWhse int
}

// Options configures the optional allow-list gate.
type Options struct {
	// AllowedPlanningWhse, when non-empty, keeps only rows whose
	// PlanningWhse matches (case-insensitive); a no-op when the column is
	// absent from a row (spec §4.2 step 5).
	AllowedPlanningWhse []string
}

// Apply runs the ordered filter pipeline over raw rows and returns the
// surviving rows plus per-stage counts. Filtering is total and
// deterministic (spec §4.2).
func Apply(rows []ports.RawRow, opts Options) ([]ports.RawRow, Counts) {
	var counts Counts

	allowed := make(map[string]bool, len(opts.AllowedPlanningWhse))
	for _, v := range opts.AllowedPlanningWhse {
		allowed[strings.ToUpper(strings.TrimSpace(v))] = true
	}

	out := make([]ports.RawRow, 0, len(rows))
	for _, row := range rows {
		row = maybeSubstituteYesNo(row, &counts)

		if v, ok := row["Credit"]; ok && strings.TrimSpace(v) == "H" {
			counts.DroppedCreditHold++
			continue
		}
		if v, ok := row["ShipHold"]; ok && strings.TrimSpace(v) == "H" {
			counts.DroppedShipHold++
			continue
		}
		if !hasPositivePieces(row) {
			counts.DroppedNoPieces++
			continue
		}
		if len(allowed) > 0 {
			whse, ok := row["PlanningWhse"]
			if ok {
				if !allowed[strings.ToUpper(strings.TrimSpace(whse))] {
					counts.DroppedPlanningWhse++
					continue
				}
			}
		}

		out = append(out, row)
	}
	return out, counts
}

// maybeSubstituteYesNo implements step 1: when yes_no == "yes", copy
// BalancePieces into ReadyPieces and BalanceWeight into ReadyWeight
// before any gate runs.
func maybeSubstituteYesNo(row ports.RawRow, counts *Counts) ports.RawRow {
	yn, ok := row["yes_no"]
	if !ok || strings.ToLower(strings.TrimSpace(yn)) != "yes" {
		return row
	}
	cp := make(ports.RawRow, len(row))
	for k, v := range row {
		cp[k] = v
	}
	if bp, ok := cp["BalancePieces"]; ok {
		cp["ReadyPieces"] = bp
	}
	if bw, ok := cp["BalanceWeight"]; ok {
		cp["ReadyWeight"] = bw
	}
	counts.Transformed++
	return cp
}

func hasPositivePieces(row ports.RawRow) bool {
	v, ok := row["ReadyPieces"]
	if !ok {
		return false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return false
	}
	return n > 0
}
