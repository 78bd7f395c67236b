package dto

import "time"

// LoadPlanRequest is the POST /plans/loads request body: the input
// table rows, keyed by the canonical column names of spec.md §6.
type LoadPlanRequest struct {
	Rows []map[string]string `json:"rows"`
}

type AssignmentResponse struct {
	TruckNumber       int        `json:"truckNumber"`
	SO                string     `json:"so"`
	Line              string     `json:"line"`
	LineSuffix        string     `json:"lineSuffix,omitempty"`
	PiecesOnTransport int        `json:"piecesOnTransport"`
	TotalWeight       float64    `json:"totalWeight"`
	IsPartial         bool       `json:"isPartial"`
	IsRemainder       bool       `json:"isRemainder"`
	IsLate            bool       `json:"isLate"`
	IsOverwidth       bool       `json:"isOverwidth"`
	Customer          string     `json:"customer"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	EarliestDue       *time.Time `json:"earliestDue,omitempty"`
	LatestDue         *time.Time `json:"latestDue,omitempty"`
}

type TruckSummaryResponse struct {
	TruckNumber      int     `json:"truckNumber"`
	Customer         string  `json:"customer"`
	State            string  `json:"state"`
	City             string  `json:"city"`
	TotalWeight      float64 `json:"totalWeight"`
	TotalPieces      int     `json:"totalPieces"`
	TotalLines       int     `json:"totalLines"`
	TotalOrders      int     `json:"totalOrders"`
	PercentOverwidth float64 `json:"percentOverwidth"`
	ContainsLate     bool    `json:"containsLate"`
	HasNearDue       bool    `json:"hasNearDue"`
	Bucket           string  `json:"bucket"`
}

type LoadPlanResponse struct {
	Trucks      []TruckSummaryResponse `json:"trucks"`
	Assignments []AssignmentResponse   `json:"assignments"`
	Sections    map[string][]int       `json:"sections"`
	Diagnostics DiagnosticsResponse    `json:"diagnostics"`
}

type DiagnosticsResponse struct {
	InvalidRows          int      `json:"invalidRows"`
	UnroutableLines      int      `json:"unroutableLines"`
	GeocodeFailures      []string `json:"geocodeFailures,omitempty"`
	ProviderFallbacks    []string `json:"providerFallbacks,omitempty"`
	CacheUnavailableOnce bool     `json:"cacheUnavailableOnce"`
}

// RoutePlanRequest is the POST /plans/routes request body: the same
// input table rows a load plan takes.
type RoutePlanRequest struct {
	Rows []map[string]string `json:"rows"`
}

type StopResponse struct {
	NormalizedKey string   `json:"normalizedKey"`
	Customer      string   `json:"customer"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Weight        float64  `json:"weight"`
	Pieces        int      `json:"pieces"`
	TruckNumbers  []int    `json:"truckNumbers"`
}

type RouteResponse struct {
	TruckID      int     `json:"truckId"`
	Stops        []int   `json:"stops"`
	StopSequence []int   `json:"stopSequence"`
	TotalMiles   float64 `json:"totalMiles"`
	TotalMinutes float64 `json:"totalMinutes"`
	TotalWeight  float64 `json:"totalWeight"`
	TotalPieces  int     `json:"totalPieces"`
}

type DroppedStopResponse struct {
	StopIndex int    `json:"stopIndex"`
	Reason    string `json:"reason"`
}

type DepotResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

type RouteTotalsResponse struct {
	Trucks      int     `json:"trucks"`
	Stops       int     `json:"stops"`
	TotalWeight float64 `json:"totalWeight"`
}

type RoutePlanResponse struct {
	Routes       []RouteResponse       `json:"routes"`
	Stops        []StopResponse        `json:"stops"`
	Depot        DepotResponse         `json:"depot"`
	Totals       RouteTotalsResponse   `json:"totals"`
	DroppedStops []DroppedStopResponse `json:"droppedStops"`
	Diagnostics  DiagnosticsResponse   `json:"diagnostics"`
}
