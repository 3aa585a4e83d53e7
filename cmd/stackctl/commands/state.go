package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// State returns the parent command for remote-state management.
func State() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage the Terraform remote-state buckets",
	}

	cmd.AddCommand(stateBootstrap())
	cmd.AddCommand(stateStatus())
	cmd.AddCommand(stateDestroy())

	return cmd
}

// stateBootstrap creates the remote-state bucket for a cloud.
//
// Environment variables:
//
//	STACKCTL_S3_ACCESS_KEY: access key for the S3-compatible endpoint (required)
//	STACKCTL_S3_SECRET_KEY: secret key for the S3-compatible endpoint (required)
func stateBootstrap() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bootstrap <cloud>",
		Short: "Create the remote-state bucket for a cloud",
		Long: `Create the object-storage bucket that holds Terraform remote state
for a cloud. The bucket is named <project>-tfstate-<cloud>. Creation is
idempotent: an already-owned bucket is treated as success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.StateBootstrap(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}

// stateStatus reports whether each cloud's state bucket exists.
func stateStatus() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which remote-state buckets exist and their object counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.StateStatus(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}

// stateDestroy deletes a cloud's remote-state bucket.
func stateDestroy() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "destroy <cloud>",
		Short: "Delete the remote-state bucket for a cloud",
		Long: `Delete the object-storage bucket that holds Terraform remote state
for a cloud. A bucket that still holds state objects is refused; run
"stackctl destroy <cloud> all" first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.StateDestroy(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}
