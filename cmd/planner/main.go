// Command planner is the application composition root: it loads
// configuration, wires concrete adapters (SQLite/Postgres caches,
// Google geocoding, ORS distance matrix) behind their ports, and starts
// the HTTP server.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"loadplanner/internal/api"
	"loadplanner/internal/bootstrap"
	"loadplanner/internal/config"
	"loadplanner/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	slog.SetDefault(logging.New(cfg.Log))

	database, dialect, err := bootstrap.OpenDatabase(cfg)
	if err != nil {
		slog.Error("bootstrap database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	router := api.NewRouter(cfg, bootstrap.Dependencies(database, dialect))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("server listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	slog.Error("server stopped", "err", srv.ListenAndServe())
}
