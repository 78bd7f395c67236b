package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"loadplanner/internal/api/dto"
	"loadplanner/internal/config"
	"loadplanner/internal/domain"
	"loadplanner/internal/normalize"
	"loadplanner/internal/planerr"
	"loadplanner/internal/planner"
	"loadplanner/internal/ports"
)

// PlanHandler exposes PlanLoads and PlanRoutes over HTTP, playing the
// same role erenceh-delivery-route-api/internal/api/handlers/plans.go's
// PlanHandler.Plan did before being split across two endpoints per
// spec.md §4.10.
type PlanHandler struct {
	Config *config.Config
	Deps   planner.Dependencies
}

func decodeRows(w http.ResponseWriter, r *http.Request, rows *[]map[string]string) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	var body struct {
		Rows []map[string]string `json:"rows"`
	}
	if err := dec.Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	*rows = body.Rows
	return true
}

func toRawRows(rows []map[string]string) []ports.RawRow {
	out := make([]ports.RawRow, len(rows))
	for i, r := range rows {
		out[i] = ports.RawRow(r)
	}
	return out
}

// Loads handles POST /plans/loads.
func (h *PlanHandler) Loads(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var rows []map[string]string
	if !decodeRows(w, r, &rows) {
		return
	}

	result, err := planner.PlanLoads(r.Context(), toRawRows(rows), h.Config, normalize.Today(time.Now()))
	if err != nil {
		if errors.Is(err, planerr.InvalidInput) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("plan loads failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toLoadPlanResponse(result))
}

// Routes handles POST /plans/routes.
func (h *PlanHandler) Routes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var rows []map[string]string
	if !decodeRows(w, r, &rows) {
		return
	}

	result, err := planner.PlanRoutes(r.Context(), toRawRows(rows), h.Config, h.Deps, normalize.Today(time.Now()))
	if err != nil {
		switch {
		case errors.Is(err, planerr.InvalidInput):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, planerr.RoutingInfeasible):
			writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		default:
			slog.Error("plan routes failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, toRoutePlanResponse(result))
}

func toLoadPlanResponse(result planner.LoadPlanResult) dto.LoadPlanResponse {
	trucks := make([]dto.TruckSummaryResponse, 0, len(result.Trucks))
	for _, t := range result.Trucks {
		trucks = append(trucks, dto.TruckSummaryResponse{
			TruckNumber:      t.TruckNumber,
			Customer:         t.GroupKey.Customer,
			State:            t.GroupKey.State,
			City:             t.GroupKey.City,
			TotalWeight:      t.TotalWeight,
			TotalPieces:      t.TotalPieces,
			TotalLines:       t.TotalLines,
			TotalOrders:      t.TotalOrders,
			PercentOverwidth: t.PercentOverwidth,
			ContainsLate:     t.ContainsLate,
			HasNearDue:       t.HasNearDue,
			Bucket:           t.Bucket.String(),
		})
	}

	assignments := make([]dto.AssignmentResponse, 0, len(result.Assignments))
	for _, a := range result.Assignments {
		assignments = append(assignments, toAssignmentResponse(a))
	}

	return dto.LoadPlanResponse{
		Trucks:      trucks,
		Assignments: assignments,
		Sections:    result.Sections,
		Diagnostics: toDiagnosticsResponse(result.Diagnostics),
	}
}

func toAssignmentResponse(a domain.Assignment) dto.AssignmentResponse {
	return dto.AssignmentResponse{
		TruckNumber:       a.TruckNumber,
		SO:                a.SO,
		Line:              a.Line,
		LineSuffix:        a.LineSuffix,
		PiecesOnTransport: a.PiecesOnTransport,
		TotalWeight:       a.TotalWeight,
		IsPartial:         a.IsPartial,
		IsRemainder:       a.IsRemainder,
		IsLate:            a.IsLate,
		IsOverwidth:       a.IsOverwidth,
		Customer:          a.Customer,
		City:              a.City,
		State:             a.State,
		EarliestDue:       a.EarliestDue,
		LatestDue:         a.LatestDue,
	}
}

func toDiagnosticsResponse(d domain.Diagnostics) dto.DiagnosticsResponse {
	return dto.DiagnosticsResponse{
		InvalidRows:          len(d.InvalidRows),
		UnroutableLines:      len(d.UnroutableLines),
		GeocodeFailures:      d.GeocodeFailures,
		ProviderFallbacks:    d.ProviderFallbacks,
		CacheUnavailableOnce: d.CacheUnavailableOnce,
	}
}

func toRoutePlanResponse(result planner.RoutePlanResult) dto.RoutePlanResponse {
	stops := make([]dto.StopResponse, 0, len(result.Stops))
	for _, s := range result.Stops {
		stops = append(stops, dto.StopResponse{
			NormalizedKey: s.NormalizedKey,
			Customer:      s.Customer,
			City:          s.City,
			State:         s.State,
			Latitude:      s.Coordinates.Lat,
			Longitude:     s.Coordinates.Lon,
			Weight:        s.Weight,
			Pieces:        s.Pieces,
			TruckNumbers:  s.TruckNumbers,
		})
	}

	routes := make([]dto.RouteResponse, 0, len(result.Routes))
	for _, rt := range result.Routes {
		routes = append(routes, dto.RouteResponse{
			TruckID:      rt.TruckID,
			Stops:        rt.StopSequence,
			StopSequence: rt.StopSequence,
			TotalMiles:   rt.TotalMiles,
			TotalMinutes: rt.TotalMinutes,
			TotalWeight:  rt.TotalWeight,
			TotalPieces:  rt.TotalPieces,
		})
	}

	dropped := make([]dto.DroppedStopResponse, 0, len(result.DroppedStops))
	for _, d := range result.DroppedStops {
		dropped = append(dropped, dto.DroppedStopResponse{StopIndex: d.StopIndex, Reason: d.Reason})
	}

	return dto.RoutePlanResponse{
		Routes: routes,
		Stops:  stops,
		Depot: dto.DepotResponse{
			Latitude:  result.Depot.Lat,
			Longitude: result.Depot.Lon,
			Name:      result.DepotName,
		},
		Totals: dto.RouteTotalsResponse{
			Trucks:      result.Totals.Trucks,
			Stops:       result.Totals.Stops,
			TotalWeight: result.Totals.TotalWeight,
		},
		DroppedStops: dropped,
		Diagnostics:  toDiagnosticsResponse(result.LoadPlan.Diagnostics),
	}
}
