// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the stackctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "stackctl",
		Short:         "Provision and operate the monitoring stack across clouds",
		SilenceErrors: true,
	}

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Apply())
	cmd.AddCommand(Destroy())
	cmd.AddCommand(Alerts())
	cmd.AddCommand(State())
	cmd.AddCommand(Health())

	// Utility commands
	cmd.AddCommand(Doctor())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
