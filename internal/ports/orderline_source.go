package ports

import "io"

// RawRow is one input table row keyed by the canonical column names of
// spec.md §6 (SO, Line, Customer, ShippingCity, ShippingState,
// ReadyPieces, ReadyWeight, Width, EarliestDue, LatestDue, Grade, Size,
// Zone, Route, PlanningWhse, Credit, ShipHold, yes_no, BalancePieces,
// BalanceWeight). Values are left as strings; the Normalizer owns all
// type coercion (spec §4.1).
type RawRow map[string]string

// OrderLineSource reads an order-line table from some transport —
// a decoded JSON array over HTTP, or a CSV/JSON file cmd/planctl loads
// from disk or stdin. Either encoding hands the Normalizer the same
// []RawRow shape.
type OrderLineSource interface {
	ReadRows(r io.Reader) ([]RawRow, error)
}
