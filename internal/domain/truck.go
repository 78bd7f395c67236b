package domain

import "time"

// WeightConfig holds the jurisdiction-dependent truck capacity bands.
type WeightConfig struct {
	TexasMax float64
	TexasMin float64
	OtherMax float64
	OtherMin float64
}

// DefaultWeightConfig mirrors the historical defaults: 47000/52000 for
// Texas, 44000/48000 elsewhere.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{TexasMax: 52000, TexasMin: 47000, OtherMax: 48000, OtherMin: 44000}
}

// CapacityFor returns (minWeight, maxWeight) for the given state.
func (w WeightConfig) CapacityFor(state string) (min, max float64) {
	switch state {
	case "TX", "TEXAS", "Texas":
		return w.TexasMin, w.TexasMax
	default:
		return w.OtherMin, w.OtherMax
	}
}

// Assignment is one piece-level allocation of an OrderLine to a Truck.
// It is immutable after creation except for TruckNumber, which the
// Cross-Bucket Topper may reassign.
type Assignment struct {
	TruckNumber int
	SO          string
	Line        string
	LineSuffix  string // "", "-R1", "-R2", ... for remainder iterations

	PiecesOnTransport int
	TotalWeight       float64

	IsPartial   bool
	IsRemainder bool
	ParentLine  string // "SO-Line" this assignment was split from, if remainder

	IsLate      bool
	IsOverwidth bool
	Width       float64
	Priority    PriorityBucket

	Customer string
	City     string
	State    string
	Zone     *string
	Route    *string

	EarliestDue *time.Time
	LatestDue   *time.Time
}

// LineID returns the displayed "SO-Line" identifier including any
// remainder suffix.
func (a Assignment) LineID() string {
	return a.SO + "-" + a.Line + a.LineSuffix
}

// GroupKey is the composite key that trucks never span:
// (zone, route, customer, state, city). Missing optional fields compare
// equal only to other missing values, realized here with *string so a
// nil zone/route never collides with the empty string "".
type GroupKey struct {
	Zone     *string
	Route    *string
	Customer string
	State    string
	City     string
}

// groupKeyPart renders an optional field for use as a comparable/hashable
// map key component: "\x00" (unused byte) marks "absent" so it can never
// collide with a real, user-supplied empty string.
func groupKeyPart(s *string) string {
	if s == nil {
		return "\x00"
	}
	return *s
}

// Comparable returns a value usable as a Go map key for this GroupKey.
func (k GroupKey) Comparable() [5]string {
	return [5]string{groupKeyPart(k.Zone), groupKeyPart(k.Route), k.Customer, k.State, k.City}
}

// Truck is a planned load: a contiguous set of Assignments sharing one
// GroupKey and respecting its capacity band.
type Truck struct {
	TruckNumber int
	GroupKey    GroupKey

	MinWeight float64
	MaxWeight float64

	TotalWeight      float64
	TotalPieces      int
	TotalLines       int
	TotalOrders      int
	MaxWidth         float64
	PercentOverwidth float64
	ContainsLate     bool
	HasNearDue       bool

	Bucket PriorityBucket

	Assignments []Assignment
}

// Recompute rebuilds every denormalized total from Assignments, the
// single authoritative source. Called after every mutation of
// Assignments (finalize, and every Topper move) so no derived field can
// drift from the assignments it summarizes.
func (t *Truck) Recompute() {
	t.TotalWeight = 0
	t.TotalPieces = 0
	t.MaxWidth = 0
	t.ContainsLate = false
	t.HasNearDue = false
	orders := make(map[string]struct{})
	var overwidthWeight float64

	for _, a := range t.Assignments {
		t.TotalWeight += a.TotalWeight
		t.TotalPieces += a.PiecesOnTransport
		orders[a.SO] = struct{}{}
		if a.IsLate {
			t.ContainsLate = true
		}
		if a.Priority == NearDue {
			t.HasNearDue = true
		}
		if a.IsOverwidth {
			overwidthWeight += a.TotalWeight
		}
		if a.Width > t.MaxWidth {
			t.MaxWidth = a.Width
		}
	}
	t.TotalLines = len(t.Assignments)
	t.TotalOrders = len(orders)
	if t.TotalWeight > 0 {
		t.PercentOverwidth = overwidthWeight / t.TotalWeight * 100
	} else {
		t.PercentOverwidth = 0
	}

	if t.ContainsLate {
		t.Bucket = Late
	} else if t.HasNearDue {
		t.Bucket = NearDue
	} else {
		t.Bucket = WithinWindow
	}
}

// IsSoftFull reports whether the truck is at or above the configured
// soft-full threshold of its MaxWeight.
func (t *Truck) IsSoftFull(softFullRatio float64) bool {
	return t.TotalWeight >= t.MaxWeight*softFullRatio
}

// RemainingCapacity returns MaxWeight - TotalWeight (may be negative only
// through floating error, never by construction).
func (t *Truck) RemainingCapacity() float64 {
	return t.MaxWeight - t.TotalWeight
}
