package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// Destroy returns the command for tearing down stack components.
//
// Takes the same <cloud> <component> arguments as apply. "all" destroys
// components in reverse dependency order: monitoring, storage, kubernetes,
// networking.
func Destroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy <cloud> <component>",
		Short: "Destroy one component or the whole stack for a cloud",
		Long: `Destroy the Terraform-managed resources of a stack component.

"all" destroys monitoring, storage, kubernetes, and networking in that
order, the reverse of apply. Components without a Terraform directory
are skipped.

Examples:
  # Destroy the monitoring component on Azure
  stackctl destroy azure monitoring

  # Tear down the full AWS stack
  stackctl destroy aws all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.Destroy(cmd.Context(), args[0], args[1], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}
