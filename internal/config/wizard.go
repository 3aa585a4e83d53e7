package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Project      string
	Cloud        Cloud
	ClusterName  string
	Region       string
	WorkerCount  int
	InstanceType string
	Monitoring   bool
}

// RunWizard runs the interactive configuration wizard.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		// Defaults
		Cloud:        CloudAWS,
		WorkerCount:  2,
		InstanceType: "t3.large",
		Monitoring:   true,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Used for resource naming and labels (DNS-safe, lowercase)").
				Placeholder("monitoring-stack").
				Value(&result.Project).
				Validate(validateProjectName),
		),

		huh.NewGroup(
			huh.NewSelect[Cloud]().
				Title("Cloud provider").
				Description("Where the first cluster is provisioned").
				Options(
					huh.NewOption("Amazon Web Services", CloudAWS),
					huh.NewOption("Microsoft Azure", CloudAzure),
					huh.NewOption("Google Cloud Platform", CloudGCP),
				).
				Value(&result.Cloud),
		),

		huh.NewGroup(
			huh.NewInput().
				Title("Cluster name").
				Description("A unique name for the first cluster (DNS-safe, lowercase)").
				Placeholder("devops").
				Value(&result.ClusterName).
				Validate(validateProjectName),

			huh.NewInput().
				Title("Region").
				Description("Provider region, e.g. eu-central-1, westeurope, europe-west3").
				Placeholder("eu-central-1").
				Value(&result.Region),
		),

		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Number of workers").
				Description("Initial worker node count").
				Options(
					huh.NewOption("1 worker", 1),
					huh.NewOption("2 workers", 2),
					huh.NewOption("3 workers", 3),
					huh.NewOption("5 workers", 5),
				).
				Value(&result.WorkerCount),

			huh.NewInput().
				Title("Instance type").
				Description("Provider instance type for worker nodes").
				Placeholder("t3.large").
				Value(&result.InstanceType),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Enable monitoring?").
				Description("Provisions the monitoring component and the default alert tenants").
				Value(&result.Monitoring),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a Config. The generated YAML is
// fully expanded so users can see every knob they may later edit.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project:      r.Project,
		TerraformDir: DefaultTerraformDir,
		Clusters: []ClusterSpec{
			{
				Name:   r.ClusterName,
				Cloud:  r.Cloud,
				Region: r.Region,
				NodePool: NodePoolSpec{
					Min:          1,
					Max:          r.WorkerCount * 2,
					Desired:      r.WorkerCount,
					InstanceType: r.InstanceType,
				},
				Labels: map[string]string{"project": r.Project},
			},
		},
	}

	if r.Monitoring {
		cfg.Alerting = AlertingConfig{
			AlertsDir: DefaultAlertsDir,
			Tenants:   DefaultTenants(),
		}
	}

	return cfg
}

// validateProjectName checks a wizard name input for DNS safety.
func validateProjectName(s string) error {
	if s == "" {
		return fmt.Errorf("name is required")
	}
	if len(s) > 63 {
		return fmt.Errorf("name must be 63 characters or less")
	}
	if s != strings.ToLower(s) {
		return fmt.Errorf("name must be lowercase")
	}
	if !isValidDNSName(s) {
		return fmt.Errorf("name can only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}
