package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// Apply returns the command for provisioning stack components.
//
// Usage:
//
//	stackctl apply <cloud> <component>
//
// cloud is one of aws, azure, gcp. component is one of networking,
// kubernetes, storage, monitoring, or all. "all" applies every component
// in dependency order, skipping components with no Terraform directory.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: auto-detect stackctl.yaml)
func Apply() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply <cloud> <component>",
		Short: "Apply one component or the whole stack for a cloud",
		Long: `Apply the Terraform definitions of a stack component.

Each component lives under terraform/<cloud>/<component> and is applied
with init, plan, apply in sequence. "all" applies networking, kubernetes,
storage, and monitoring in that order; components without a Terraform
directory are skipped.

Examples:
  # Apply the networking component on AWS
  stackctl apply aws networking

  # Apply the full stack on GCP
  stackctl apply gcp all`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.Apply(cmd.Context(), args[0], args[1], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}
