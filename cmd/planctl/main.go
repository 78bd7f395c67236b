// Command planctl is the operator-facing CLI: it loads an order-line
// table from a JSON or CSV file and runs the same load- and route-
// planning pipeline the HTTP server exposes, for offline runs and
// scripting. Structured the way
// inference-sim-inference-sim/cmd/root.go builds its cobra command
// tree (a rootCmd holding subcommands, flags bound in init()).
package main

import "loadplanner/cmd/planctl/cmd"

func main() {
	cmd.Execute()
}
