package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// Health returns the command that reports cluster node readiness.
func Health() *cobra.Command {
	var (
		kubeconfig string
		selector   string
		jsonOutput bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "health <cluster>",
		Short: "Report node readiness for a provisioned cluster",
		Long: `Report node readiness for a cluster using the kubeconfig written by
the provisioning step. Exits non-zero when any node is not ready.

Examples:
  # One-shot readiness report
  stackctl health devops

  # Machine-readable output
  stackctl health devops --json

  # Poll every few seconds
  stackctl health apps --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.Health(cmd.Context(), args[0], kubeconfig, selector, jsonOutput, watch)
		},
	}

	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig (default: kubeconfig-<cluster>)")
	cmd.Flags().StringVarP(&selector, "selector", "l", "", "Label selector restricting the check to one node pool")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output status as JSON")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Poll readiness continuously")

	return cmd
}
