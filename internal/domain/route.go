package domain

// Stop is one routable destination offered to the VRP solver: an
// aggregation of one or more Assignments bound for the same address.
type Stop struct {
	NormalizedKey string
	Customer      string
	City          string
	State         string
	Coordinates   Coordinates

	Weight       float64
	Pieces       int
	TruckNumbers []int // source Truck(s) this stop aggregates
}

// Route is one vehicle's planned sequence of stops, anchored at the
// depot on both ends. StopSequence holds indices into the Stops slice
// passed to the solver, in visiting order.
type Route struct {
	TruckID      int
	StopSequence []int
	TotalMiles   float64
	TotalMinutes float64
	TotalWeight  float64
	TotalPieces  int
}

// DroppedStop records why the solver excluded a stop from every route.
type DroppedStop struct {
	StopIndex int
	Reason    string
}

// Dropped-stop diagnostic reasons, per spec.
const (
	ReasonWeightExceedsCapacity     = "stop_weight_exceeds_truck_capacity"
	ReasonRoundtripExceedsLimit     = "roundtrip_time_exceeds_limit"
	ReasonNoDistanceAvailable       = "no_distance_time_available"
	ReasonNotRoutedUnderConstraints = "not_routed_under_constraints"
)
