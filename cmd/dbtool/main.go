// Command dbtool initializes the address/distance cache schema against
// whichever database internal/config.Load resolves, independent of the
// HTTP server — handy for provisioning a fresh Postgres instance or a
// local SQLite file before the first planner run.
package main

import (
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"loadplanner/internal/cache"
	"loadplanner/internal/config"
	"loadplanner/internal/platform/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	database, err := db.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	dialect := cache.SQLite
	if cfg.Database.Driver == "postgres" {
		dialect = cache.Postgres
	}

	slog.Info("initializing cache schema", "driver", cfg.Database.Driver)
	if err := cache.InitSchema(database, dialect); err != nil {
		log.Fatalf("init schema: %v", err)
	}
	slog.Info("schema ready")

	os.Exit(0)
}
