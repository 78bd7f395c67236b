package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"loadplanner/internal/bootstrap"
	"loadplanner/internal/config"
	"loadplanner/internal/ingest"
	"loadplanner/internal/normalize"
	"loadplanner/internal/planner"
	"loadplanner/internal/ports"
)

var (
	planInputPath   string
	planInputFormat string
)

func init() {
	loadsCmd.Flags().StringVar(&planInputPath, "input", "", "order-line file path (default: stdin)")
	loadsCmd.Flags().StringVar(&planInputFormat, "format", "json", "input format: json or csv")
	routesCmd.Flags().StringVar(&planInputPath, "input", "", "order-line file path (default: stdin)")
	routesCmd.Flags().StringVar(&planInputFormat, "format", "json", "input format: json or csv")

	planCmd.AddCommand(loadsCmd)
	planCmd.AddCommand(routesCmd)
}

var loadsCmd = &cobra.Command{
	Use:   "loads",
	Short: "Build a load plan from an order-line file and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, cfg, err := readPlanInput()
		if err != nil {
			return err
		}

		result, err := planner.PlanLoads(cmd.Context(), rows, cfg, normalize.Today(time.Now()))
		if err != nil {
			return fmt.Errorf("plan loads: %w", err)
		}
		return printJSON(result)
	},
}

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Build a route plan from an order-line file and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, cfg, err := readPlanInput()
		if err != nil {
			return err
		}

		database, dialect, err := bootstrap.OpenDatabase(cfg)
		if err != nil {
			return fmt.Errorf("plan routes: %w", err)
		}
		defer database.Close()

		deps := bootstrap.Dependencies(database, dialect)
		result, err := planner.PlanRoutes(cmd.Context(), rows, cfg, deps, normalize.Today(time.Now()))
		if err != nil {
			return fmt.Errorf("plan routes: %w", err)
		}
		return printJSON(result)
	},
}

// readPlanInput loads configuration and the order-line rows named by
// --input/--format (stdin when --input is empty), the CLI's analogue of
// the HTTP handlers' decodeRows.
func readPlanInput() ([]ports.RawRow, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	f := os.Stdin
	if planInputPath != "" {
		opened, err := os.Open(planInputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open input file: %w", err)
		}
		defer opened.Close()
		f = opened
	}

	var source ports.OrderLineSource
	switch strings.ToLower(planInputFormat) {
	case "csv":
		source = ingest.CSVSource{}
	case "json", "":
		source = ingest.JSONSource{}
	default:
		return nil, nil, fmt.Errorf("unknown input format %q (want json or csv)", planInputFormat)
	}

	rows, err := source.ReadRows(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read input rows: %w", err)
	}
	return rows, cfg, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
