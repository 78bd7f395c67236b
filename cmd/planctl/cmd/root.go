// Package cmd is planctl's cobra command tree, structured the way
// inference-sim-inference-sim/cmd/root.go builds its rootCmd and
// subcommands: package-level command vars wired in init(), flags bound
// to package-level variables, Execute() the sole exported entry point.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Batch CLI for the truck load and route planner",
}

// Execute runs the command tree; main just calls this.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run the planner against an order-line file",
}
