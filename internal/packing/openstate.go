package packing

import (
	"time"

	"loadplanner/internal/domain"
)

// openTruck is the explicit mutable record the packing loop threads
// through instead of ambient captured state (Design Note 9). finalize
// returns a fresh, empty record so no field can leak across trucks.
type openTruck struct {
	weight           float64
	pieces           int
	assignments      []assignmentDraft
	maxWidth         float64
	containsLate     bool
	hasNearDue       bool
	truckEarliestDue *time.Time // min EarliestDue among its assignments
}

// assignmentDraft mirrors domain.Assignment minus TruckNumber, which is
// only known at finalize time.
type assignmentDraft struct {
	SO, Line, LineSuffix  string
	PiecesOnTransport     int
	TotalWeight           float64
	IsPartial             bool
	IsRemainder           bool
	ParentLine            string
	IsLate                bool
	IsOverwidth           bool
	Width                 float64
	Priority              domain.PriorityBucket
	Customer, City, State string
	Zone, Route           *string
	EarliestDue, LatestDue *time.Time
}

func newOpenTruck() *openTruck { return &openTruck{} }

func (o *openTruck) remaining(maxWeight float64) float64 { return maxWeight - o.weight }

func (o *openTruck) isEmpty() bool { return len(o.assignments) == 0 }

func (o *openTruck) commit(pk packable, take int) {
	w := float64(take) * pk.Wpp
	o.weight += w
	o.pieces += take
	if pk.Width > o.maxWidth {
		o.maxWidth = pk.Width
	}
	if pk.IsLate {
		o.containsLate = true
	}
	if pk.Priority == domain.NearDue {
		o.hasNearDue = true
	}
	if pk.EarliestDue != nil {
		if o.truckEarliestDue == nil || pk.EarliestDue.Before(*o.truckEarliestDue) {
			ed := *pk.EarliestDue
			o.truckEarliestDue = &ed
		}
	}

	parent := pk.ParentLine
	if pk.IsRemainder && parent == "" {
		parent = pk.SO + "-" + pk.Line
	}

	o.assignments = append(o.assignments, assignmentDraft{
		SO: pk.SO, Line: pk.Line, LineSuffix: pk.Suffix,
		PiecesOnTransport: take,
		TotalWeight:       w,
		IsPartial:         take < pk.Pieces,
		IsRemainder:       pk.IsRemainder,
		ParentLine:        parent,
		IsLate:            pk.IsLate,
		IsOverwidth:       pk.IsOverwidth,
		Width:             pk.Width,
		Priority:          pk.Priority,
		Customer:          pk.Customer, City: pk.City, State: pk.State,
		Zone: pk.Zone, Route: pk.Route,
		EarliestDue: pk.EarliestDue, LatestDue: pk.LatestDue,
	})
}
