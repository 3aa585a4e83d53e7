package commands

import (
	"github.com/spf13/cobra"

	"github.com/stackops/stackctl/cmd/stackctl/handlers"
	"github.com/stackops/stackctl/internal/config"
)

// Init returns the command that creates a configuration file interactively.
func Init() *cobra.Command {
	var (
		outputPath string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file interactively",
		Long: `Run the configuration wizard and write the result to stackctl.yaml.

The wizard asks for the project name, the cloud, the first cluster's
sizing, and whether monitoring is enabled. The generated YAML is fully
expanded so every setting can be edited afterwards.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Init(cmd.Context(), outputPath, force)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFile, "Path to write the configuration file")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
