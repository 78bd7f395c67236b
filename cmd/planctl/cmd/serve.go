package cmd

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/spf13/cobra"

	"loadplanner/internal/api"
	"loadplanner/internal/bootstrap"
	"loadplanner/internal/config"
	"loadplanner/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP planning server (equivalent to the planner binary)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		slog.SetDefault(logging.New(cfg.Log))

		database, dialect, err := bootstrap.OpenDatabase(cfg)
		if err != nil {
			return fmt.Errorf("bootstrap database: %w", err)
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
		return srv.ListenAndServe()
	},
}
