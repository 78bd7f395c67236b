package packing

import (
	"time"

	"loadplanner/internal/domain"
)

// packable is one still-to-be-placed piece count, either a fresh
// OrderLine or a remainder residual queued by an earlier pass. Carrying
// both cases through one shape lets packOne treat them identically,
// per Design Note 9 ("model as a worklist, not recursion").
type packable struct {
	SO         string
	Line       string
	Suffix     string // "", "-R1", "-R2", ...
	ParentLine string // set only when IsRemainder

	Pieces int
	Wpp    float64
	Width  float64

	IsLate      bool
	IsOverwidth bool
	Priority    domain.PriorityBucket
	EarliestDue *time.Time
	LatestDue   *time.Time

	Customer string
	City     string
	State    string
	Zone     *string
	Route    *string

	IsRemainder bool
	Iteration   int
}

func fromOrderLine(l domain.OrderLine) packable {
	return packable{
		SO: l.SO, Line: l.Line,
		Pieces: l.ReadyPieces, Wpp: l.WeightPerPiece, Width: l.Width,
		IsLate: l.IsLate, IsOverwidth: l.IsOverwidth, Priority: l.Priority,
		EarliestDue: l.EarliestDue, LatestDue: l.LatestDue,
		Customer: l.Customer, City: l.City, State: l.State, Zone: l.Zone, Route: l.Route,
	}
}

// sortLess orders packables priority-rank ascending, then (SO, Line)
// lexical (spec §4.4 "Ordering within a group").
func sortLess(a, b packable) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if a.SO != b.SO {
		return a.SO < b.SO
	}
	return a.Line < b.Line
}
