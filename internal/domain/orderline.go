package domain

import "time"

// PriorityBucket ranks an OrderLine or Truck by due-date urgency.
// Ordering (most to least urgent): Late, NearDue, WithinWindow, NotDue.
type PriorityBucket int

const (
	Late PriorityBucket = iota
	NearDue
	WithinWindow
	NotDue
)

func (b PriorityBucket) String() string {
	switch b {
	case Late:
		return "Late"
	case NearDue:
		return "NearDue"
	case WithinWindow:
		return "WithinWindow"
	case NotDue:
		return "NotDue"
	default:
		return "Unknown"
	}
}

// OverwidthThresholdIn is the width above which a line is flagged overwidth.
const OverwidthThresholdIn = 96.0

// OrderLine is one canonicalized input row: an open order line awaiting
// truck assignment. SourceColumn doc comments below name the upstream
// mapped column this field originated from, for operational traceability
// when a row fails normalization.
type OrderLine struct {
	SO   string // SourceColumn: SO
	Line string // SourceColumn: Line

	Customer string // SourceColumn: Customer
	City     string // SourceColumn: ShippingCity
	State    string // SourceColumn: ShippingState
	Country  string // derived from State

	ReadyPieces    int     // SourceColumn: ReadyPieces
	ReadyWeight    float64 // SourceColumn: ReadyWeight
	WeightPerPiece float64 // derived: ReadyWeight / ReadyPieces, or input-supplied

	Width float64 // SourceColumn: Width, inches

	EarliestDue *time.Time // SourceColumn: EarliestDue, UTC midnight
	LatestDue   *time.Time // SourceColumn: LatestDue, UTC midnight

	IsLate        bool
	IsOverwidth   bool
	DaysUntilLate *int
	Priority      PriorityBucket

	Zone  *string // SourceColumn: Zone
	Route *string // SourceColumn: Route

	Grade string // SourceColumn: Grade
	Size  string // SourceColumn: Size
}

// Key returns the (SO, Line) identity tuple used for tie-breaks.
func (l OrderLine) Key() (string, string) { return l.SO, l.Line }

// IsTexas reports whether the line ships to a Texas destination.
func (l OrderLine) IsTexas() bool {
	switch l.State {
	case "TX", "TEXAS", "Texas":
		return true
	default:
		return false
	}
}

// ComputePriority derives the PriorityBucket strictly from latestDue versus
// today, per spec: Late < NearDue (0..3 days) < WithinWindow (>3 days) <
// NotDue (no latestDue). EarliestDue is not consulted here.
func ComputePriority(latestDue *time.Time, today time.Time) PriorityBucket {
	if latestDue == nil {
		return NotDue
	}
	if latestDue.Before(today) {
		return Late
	}
	days := int(latestDue.Sub(today).Hours() / 24)
	if days <= 3 {
		return NearDue
	}
	return WithinWindow
}
