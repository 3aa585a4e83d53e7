package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
)

// Alerts returns the parent command for alert rule management.
func Alerts() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Manage alert rules for the multi-tenant metrics backend",
	}

	cmd.AddCommand(alertsPush())
	cmd.AddCommand(alertsLint())
	cmd.AddCommand(alertsList())

	return cmd
}

// alertsPush uploads a cluster's rule files to its tenant.
//
// devops pushes alerts/devops to tenant _devops; apps pushes alerts/apps
// to tenant _apps. The backend address comes from MIMIR_ADDRESS or the
// alerting.address config field.
func alertsPush() *cobra.Command {
	var (
		configPath       string
		alertmanagerFile string
		templateFiles    []string
	)

	cmd := &cobra.Command{
		Use:   "push <cluster>",
		Short: "Validate and upload a cluster's alert rules",
		Long: `Validate and upload the alert rule files of a cluster tenant.

Every YAML file in the cluster's rule directory is parsed and validated
before anything is uploaded; the first upload failure aborts the rest.

Examples:
  # Push the devops rules to tenant _devops
  stackctl alerts push devops

  # Push rules plus an alertmanager configuration
  stackctl alerts push apps --alertmanager-config alertmanager.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.AlertsPush(cmd.Context(), args[0], configPath, alertmanagerFile, templateFiles)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")
	cmd.Flags().StringVar(&alertmanagerFile, "alertmanager-config", "", "Alertmanager configuration file to upload alongside the rules")
	cmd.Flags().StringArrayVar(&templateFiles, "template", nil, "Notification template file (repeatable, requires --alertmanager-config)")

	return cmd
}

// alertsList shows the rule groups currently stored for a cluster's tenant.
func alertsList() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list <cluster>",
		Short: "List the rule groups stored for a cluster's tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.AlertsList(cmd.Context(), args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}

// alertsLint validates a cluster's rule files and the routing table offline.
func alertsLint() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "lint <cluster>",
		Short: "Validate alert rules and routing offline",
		Long: `Validate a cluster's rule files and the alert routing table without
contacting the backend: rule files must parse, groups must be named and
non-empty, and every route must reference a declared receiver.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return handlers.AlertsLint(args[0], configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: stackctl.yaml)")

	return cmd
}
