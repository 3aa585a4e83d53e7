package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// Doctor returns the command that checks required client tools.
func Doctor() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that required client tools are installed",
		Long: `Check the client environment: terraform and mimirtool must be on PATH,
kubectl is recommended. Exits non-zero when a required tool is missing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Doctor()
		},
	}
}
