package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/stackops/stackctl/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the configuration wizard.
	runWizard = config.RunWizard

	// saveConfig writes the config to a file.
	saveConfig = config.Save
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string, force bool) error {
	if fileExists(outputPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", outputPath)
	}

	printWelcome(os.Stdout)

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("generated config invalid: %w", err)
	}

	if err := saveConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(os.Stdout, outputPath, cfg)
	return nil
}

// printWelcome prints the welcome message.
func printWelcome(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "stackctl - monitoring stack operations")
	fmt.Fprintln(w, "======================================")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This wizard creates a project configuration with sensible defaults.")
	fmt.Fprintln(w, "The generated YAML is fully expanded and can be edited afterwards.")
	fmt.Fprintln(w)
}

// printInitSuccess prints the summary and next steps. Cloud values are
// printed as their short ids so the suggested commands can be pasted as-is.
func printInitSuccess(w io.Writer, outputPath string, cfg *config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration saved!")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  File: %s\n", outputPath)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Project Summary")
	fmt.Fprintln(w, "---------------")
	fmt.Fprintf(w, "  Project:    %s\n", cfg.Project)
	for _, cluster := range cfg.Clusters {
		fmt.Fprintf(w, "  Cluster:    %s (%s, %s)\n", cluster.Name, string(cluster.Cloud), cluster.Region)
		fmt.Fprintf(w, "  Node pool:  %d-%d x %s (desired %d)\n",
			cluster.NodePool.Min, cluster.NodePool.Max,
			cluster.NodePool.InstanceType, cluster.NodePool.Desired)
	}
	if len(cfg.Alerting.Tenants) > 0 {
		fmt.Fprintf(w, "  Monitoring: enabled (%d tenants)\n", len(cfg.Alerting.Tenants))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Next Steps")
	fmt.Fprintln(w, "----------")
	fmt.Fprintln(w, "  1. Export your cloud credentials for terraform")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  2. Review %s if needed\n", outputPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  3. Bootstrap remote state and apply the stack:")
	for _, cluster := range cfg.Clusters {
		fmt.Fprintf(w, "     stackctl state bootstrap %s\n", string(cluster.Cloud))
		fmt.Fprintf(w, "     stackctl apply %s all\n", string(cluster.Cloud))
		break
	}
	fmt.Fprintln(w)
}
