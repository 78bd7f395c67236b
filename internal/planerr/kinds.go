// Package planerr defines the error-kind taxonomy shared across the
// planning pipeline. These are sentinel values, not types: wrap one with
// fmt.Errorf("stage: detail: %w", planerr.InvalidRow) and test with
// errors.Is.
package planerr

import "errors"

var (
	// InvalidInput: malformed table, a required column missing. Fatal at
	// the request boundary.
	InvalidInput = errors.New("invalid input")

	// InvalidRow: a single row is unparseable. The row is dropped,
	// counted, and reported; planning proceeds.
	InvalidRow = errors.New("invalid row")

	// Unroutable: a single line's per-piece weight exceeds every truck's
	// capacity. Excluded with reason; planning proceeds.
	Unroutable = errors.New("unroutable line")

	// GeocodeFailed: a destination could not be geocoded. Excluded from
	// routing; load planning is unaffected.
	GeocodeFailed = errors.New("geocode failed")

	// ProviderUnavailable: an external API call failed. The
	// distance-matrix layer falls back to Haversine; the geocode layer
	// reports a per-address failure.
	ProviderUnavailable = errors.New("provider unavailable")

	// CacheUnavailable: the persistence layer is down. Every lookup is
	// treated as a miss; writes are skipped; logged once per request.
	CacheUnavailable = errors.New("cache unavailable")

	// RoutingInfeasible: the VRP solver found no solution within its
	// time budget. Fatal for route-plan requests only.
	RoutingInfeasible = errors.New("routing infeasible")
)
