// Package normalize canonicalizes one raw input row into a domain.OrderLine,
// ported from original_source/backend/app/excel_utils.py's
// compute_calculated_fields and build_priority_bucket.
package normalize

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"loadplanner/internal/domain"
	"loadplanner/internal/planerr"
	"loadplanner/internal/ports"
)

// mexicoStateCodes mirrors excel_utils.py's MX_STATE_CODES: a state code
// in this set implies the destination is in Mexico, not the USA.
var mexicoStateCodes = map[string]bool{
	"AGU": true, "BCN": true, "BCS": true, "CAM": true, "CHP": true,
	"CHH": true, "CH": true, "CMX": true, "COA": true, "COL": true,
	"DUR": true, "GUA": true, "GRO": true, "HID": true, "JAL": true,
	"MEX": true, "MIC": true, "MOR": true, "NAY": true, "NLE": true,
	"OAX": true, "PUE": true, "QUE": true, "ROO": true, "SLP": true,
	"SIN": true, "SON": true, "TAB": true, "TAM": true, "TLA": true,
	"VER": true, "YUC": true, "ZAC": true,
}

// Row normalizes one raw input row into an OrderLine. today is the
// UTC-midnight instant all due-date comparisons are made against. An
// error wraps planerr.InvalidRow and the row must be dropped, counted,
// and reported — it does not abort the request (spec §4.1, §7).
func Row(raw ports.RawRow, today time.Time) (domain.OrderLine, error) {
	so := strings.TrimSpace(raw["SO"])
	line := strings.TrimSpace(raw["Line"])
	if so == "" || line == "" {
		return domain.OrderLine{}, fmt.Errorf("normalize row: missing SO/Line: %w", planerr.InvalidRow)
	}

	readyPieces, ok := parseInt(raw["ReadyPieces"])
	if !ok {
		return domain.OrderLine{}, fmt.Errorf("normalize row %s-%s: null ReadyPieces: %w", so, line, planerr.InvalidRow)
	}
	readyWeight, ok := parseFloat(raw["ReadyWeight"])
	if !ok {
		return domain.OrderLine{}, fmt.Errorf("normalize row %s-%s: null ReadyWeight: %w", so, line, planerr.InvalidRow)
	}

	var wpp float64
	if v, ok := parseFloat(raw["WeightPerPiece"]); ok && v > 0 {
		wpp = v
	} else if readyPieces > 0 {
		wpp = readyWeight / float64(readyPieces)
	}

	width, _ := parseFloat(raw["Width"])

	earliestDue := parseDue(raw["EarliestDue"])
	latestDue := parseDue(raw["LatestDue"])

	state := strings.ToUpper(strings.TrimSpace(raw["ShippingState"]))
	country := "USA"
	if mexicoStateCodes[state] {
		country = "Mexico"
	}

	var zone, route *string
	if v := strings.TrimSpace(raw["Zone"]); v != "" {
		zone = &v
	}
	if v := strings.TrimSpace(raw["Route"]); v != "" {
		route = &v
	}

	priority := domain.ComputePriority(latestDue, today)
	isLate := latestDue != nil && latestDue.Before(today)

	var daysUntilLate *int
	if latestDue != nil {
		d := int(latestDue.Sub(today).Hours() / 24)
		daysUntilLate = &d
	}

	return domain.OrderLine{
		SO:             so,
		Line:           line,
		Customer:       strings.TrimSpace(raw["Customer"]),
		City:           strings.TrimSpace(raw["ShippingCity"]),
		State:          state,
		Country:        country,
		ReadyPieces:    readyPieces,
		ReadyWeight:    readyWeight,
		WeightPerPiece: wpp,
		Width:          width,
		EarliestDue:    earliestDue,
		LatestDue:      latestDue,
		IsLate:         isLate,
		IsOverwidth:    width > domain.OverwidthThresholdIn,
		DaysUntilLate:  daysUntilLate,
		Priority:       priority,
		Zone:           zone,
		Route:          route,
		Grade:          strings.TrimSpace(raw["Grade"]),
		Size:           strings.TrimSpace(raw["Size"]),
	}, nil
}

// parseInt tolerantly parses an integer field: empty string is null,
// non-numeric is null (spec §4.1).
func parseInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// dueDateLayouts covers ISO-8601 and the common locale forms the
// upstream spreadsheet export emits.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02T15:04:05",
	"01/02/2006",
	"1/2/2006",
}

// parseDue parses a due-date field, normalizing to UTC midnight for
// comparison purposes. Returns nil on empty or unparseable input —
// callers treat a nil LatestDue as NotDue, not as an error.
func parseDue(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &midnight
		}
	}
	return nil
}

// Today returns the UTC-midnight instant normalization and packing
// compare due dates against.
func Today(now time.Time) time.Time {
	u := now.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
