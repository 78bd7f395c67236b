package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loadplanner/internal/api/handlers"
	"loadplanner/internal/config"
	"loadplanner/internal/planner"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters): cmd/planner/main.go supplies the cache and
// provider adapters, and the router just threads them through to
// PlanHandler.
func NewRouter(cfg *config.Config, deps planner.Dependencies) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{Config: cfg, Deps: deps}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans/loads", planHandler.Loads)
	mux.HandleFunc("/plans/routes", planHandler.Routes)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
