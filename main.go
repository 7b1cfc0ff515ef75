// Package main is the entry point for the royale CLI tool, which
// collects Clash Royale clan battle telemetry and computes statistics
// over it.
package main

import "royale-metrics/cmd"

func main() {
	cmd.Execute()
}
