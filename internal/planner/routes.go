package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"loadplanner/internal/config"
	"loadplanner/internal/distance"
	"loadplanner/internal/domain"
	"loadplanner/internal/geocode"
	"loadplanner/internal/obs"
	"loadplanner/internal/planerr"
	"loadplanner/internal/ports"
	"loadplanner/internal/vrp"
)

// RouteTotals aggregates the route plan's headline numbers (spec §6
// Route-plan response "totals").
type RouteTotals struct {
	Trucks      int
	Stops       int
	TotalWeight float64
}

// RoutePlanResult is PlanRoutes' complete output.
type RoutePlanResult struct {
	LoadPlan     LoadPlanResult
	Stops        []domain.Stop
	Routes       []domain.Route
	DroppedStops []domain.DroppedStop
	Depot        domain.Coordinates
	DepotName    string
	Totals       RouteTotals
}

// Dependencies bundles the external adapters PlanRoutes drives: the
// cache-then-provider geocoder and distance-matrix builder. Both caches
// and both providers may be nil (e.g. a cache-less CLI dry run); the
// Haversine provider always backstops a nil/failing DistanceMatrixProvider.
type Dependencies struct {
	AddressCache     ports.AddressCache
	Geocoder         ports.GeocodingProvider
	DistanceCache    ports.DistanceCache
	DistanceProvider ports.DistanceMatrixProvider
}

// PlanRoutes runs PlanLoads and then the routing half of the pipeline:
// aggregate assignments into per-destination stops, geocode them,
// build the depot-anchored distance/time matrix, and solve the
// capacitated VRP. An error from PlanLoads is returned as is, and a
// non-empty stop set that the solver routes zero of is promoted to
// planerr.RoutingInfeasible (spec §7); geocoding, cache and distance
// failures degrade to a diagnostic and a non-fatal result.
func PlanRoutes(ctx context.Context, rows []ports.RawRow, cfg *config.Config, deps Dependencies, today time.Time) (result RoutePlanResult, err error) {
	defer obs.Time(ctx, "plan_routes")(&err)

	loadResult, err := PlanLoads(ctx, rows, cfg, today)
	result.LoadPlan = loadResult
	if err != nil {
		return result, err
	}

	result.Depot = domain.Coordinates{Lat: cfg.Depot.Latitude, Lon: cfg.Depot.Longitude}
	result.DepotName = cfg.Depot.Name

	destinations, destByKey := buildDestinations(loadResult.Assignments)
	if len(destinations) == 0 {
		return result, nil
	}

	resolved, _ := geocode.Resolve(ctx, destinations, deps.AddressCache, deps.Geocoder, cfg.Geocoder.WorkerCount, &result.LoadPlan.Diagnostics)

	stops := buildStops(destByKey, resolved)
	sort.Slice(stops, func(i, j int) bool { return stops[i].NormalizedKey < stops[j].NormalizedKey })
	result.Stops = stops

	if len(stops) == 0 {
		return result, nil
	}

	haversine := distance.NewHaversineProvider(cfg.Geocoder.DetourFactor, cfg.Geocoder.AvgSpeedMph)
	builder := distance.NewBuilder(deps.DistanceCache, deps.DistanceProvider, haversine, cfg.Geocoder.Provider)
	builder.LargeMatrixCutoff = cfg.VRP.LargeMatrixCutoff

	points := make([]domain.Coordinates, 0, len(stops)+1)
	points = append(points, result.Depot)
	for _, s := range stops {
		points = append(points, s.Coordinates)
	}

	matrices, merr := builder.Build(ctx, points, &result.LoadPlan.Diagnostics)
	if merr != nil {
		return result, fmt.Errorf("plan routes: build distance matrix: %w", merr)
	}

	params := cfg.VRP.ToDomain()
	routes, dropped := vrp.Solve(ctx, stops, matrices.Miles, matrices.Minutes, params)
	result.Routes = routes
	result.DroppedStops = dropped

	for _, d := range dropped {
		obs.VRPDroppedStopsTotal.WithLabelValues(d.Reason).Inc()
	}

	if len(routes) == 0 {
		return result, fmt.Errorf("plan routes: no stop could be routed: %w", planerr.RoutingInfeasible)
	}

	for _, r := range routes {
		result.Totals.Trucks++
		result.Totals.Stops += len(r.StopSequence)
		result.Totals.TotalWeight += r.TotalWeight
	}

	return result, nil
}

// buildDestinations derives one geocode.Destination per distinct
// (city, state) pair — the only address granularity the input table
// carries (spec.md §6 has no street/zip column). Assignments of
// different customers in the same city merge into one stop, whose
// Customer is that of the first assignment seen.
func buildDestinations(assignments []domain.Assignment) ([]geocode.Destination, map[string]*domain.Stop) {
	byKey := make(map[string]*domain.Stop)
	var destinations []geocode.Destination

	for _, a := range assignments {
		parts := geocode.NormalizeParts("", a.City, a.State, "")
		key := parts.NormalizedKey()

		if s, ok := byKey[key]; ok {
			s.Weight += a.TotalWeight
			s.Pieces += a.PiecesOnTransport
			s.TruckNumbers = appendUnique(s.TruckNumbers, a.TruckNumber)
			continue
		}

		byKey[key] = &domain.Stop{
			NormalizedKey: key,
			Customer:      a.Customer,
			City:          a.City,
			State:         a.State,
			Weight:        a.TotalWeight,
			Pieces:        a.PiecesOnTransport,
			TruckNumbers:  []int{a.TruckNumber},
		}
		destinations = append(destinations, geocode.Destination{NormalizedKey: key, Query: parts.Query(), Parts: parts})
	}

	return destinations, byKey
}

func appendUnique(nums []int, n int) []int {
	for _, v := range nums {
		if v == n {
			return nums
		}
	}
	return append(nums, n)
}

// buildStops keeps only destinations the geocoder actually resolved;
// an unresolved destination's diagnostic entry was already recorded by
// geocode.Resolve, and it is silently excluded from routing here,
// per spec §7 GeocodeFailed semantics.
func buildStops(byKey map[string]*domain.Stop, resolved map[string]domain.AddressRecord) []domain.Stop {
	out := make([]domain.Stop, 0, len(byKey))
	for key, stop := range byKey {
		rec, ok := resolved[key]
		if !ok || !rec.Resolved() {
			continue
		}
		s := *stop
		s.Coordinates = domain.Coordinates{Lat: *rec.Latitude, Lon: *rec.Longitude}
		out = append(out, s)
	}
	return out
}
