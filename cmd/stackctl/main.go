// Package main is the entry point for the stackctl CLI.
//
// stackctl drives the monitoring-stack infrastructure: it applies and
// destroys per-cloud Terraform components, pushes alert rules to the
// multi-tenant metrics backend, bootstraps remote-state buckets, and
// reports cluster health.
//
// Commands: apply, destroy, alerts, state, health, doctor, init.
//
// For detailed usage information, run:
//
//	stackctl --help
package main

import (
	"fmt"
	"os"

	"github.com/stackops/stackctl/cmd/stackctl/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
