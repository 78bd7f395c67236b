// Package obs carries the teacher's request-scoped timing helper
// (internal/platform/obs/timing.go) forward, generalized from a single
// log.Printf call to structured slog plus a Prometheus histogram so
// each timed operation (PlanLoads, PlanRoutes) is both logged and
// measured (SPEC_FULL.md Observability).
package obs

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// Time starts a stopwatch for operation name and returns a closer to
// call with the operation's resulting error (nil on success). Mirrors
// erenceh-delivery-route-api/internal/platform/obs/timing.go's
// defer obs.Time(ctx, "op")(&err) idiom.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)
		StageDuration.WithLabelValues(name).Observe(dur.Seconds())

		if errp != nil && *errp != nil {
			slog.Error("stage failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		slog.Info("stage complete", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
