package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StageDuration tracks how long each obs.Time-wrapped operation takes
// per invocation, labeled by operation name; PlanLoads and PlanRoutes
// record under "plan_loads" and "plan_routes".
var StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "planner_stage_duration_seconds",
	Help:    "Duration of a planning pipeline stage in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"stage"})

// TrucksTotal counts trucks produced by a load-planning run, labeled by
// whether the truck holds at least one late line.
var TrucksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "planner_trucks_total",
	Help: "Trucks produced by the bin packer, labeled by late-content.",
}, []string{"contains_late"})

// GeocodeCacheHitRatio is a per-run gauge: cache hits / total lookups.
var GeocodeCacheHitRatio = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "planner_geocode_cache_hit_ratio",
	Help: "Fraction of geocode lookups served from cache in the most recent run.",
})

// VRPDroppedStopsTotal counts stops the routing solver could not place,
// labeled by the reason it gave up on them.
var VRPDroppedStopsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "planner_vrp_dropped_stops_total",
	Help: "Stops dropped by the VRP solver, labeled by reason.",
}, []string{"reason"})
