package handlers

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/stackops/stackctl/internal/alerts"
	"github.com/stackops/stackctl/internal/config"
	"github.com/stackops/stackctl/internal/platform/mimir"
)

// Factory function variables for alerts - can be replaced in tests.
var (
	// newMimirClient creates the mimirtool executor.
	newMimirClient = func(address string) mimir.Client {
		return mimir.NewExecClient(address)
	}
)

// AlertsPush validates and uploads a cluster's alert rules to its tenant.
//
// The cluster argument selects the tenant binding (devops uploads
// alerts/devops as tenant _devops, apps uploads alerts/apps as _apps,
// unless the config overrides the mapping). Every rule file is validated
// before the first upload; the first upload failure aborts the rest.
func AlertsPush(ctx context.Context, cluster, configPath, alertmanagerFile string, templateFiles []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	tenant, ruleDir, err := resolveTenant(cfg, cluster)
	if err != nil {
		return err
	}

	address := cfg.AlertingAddress()
	if address == "" {
		return fmt.Errorf("alerting address not configured: set MIMIR_ADDRESS or alerting.address")
	}

	client := newMimirClient(address)

	log.Printf("Pushing rules from %s to tenant %s", ruleDir, tenant.ID)
	if err := alerts.NewPusher(client).Push(ctx, tenant.ID, ruleDir); err != nil {
		return err
	}

	if alertmanagerFile != "" {
		log.Printf("Uploading alertmanager config %s for tenant %s", alertmanagerFile, tenant.ID)
		if err := client.LoadAlertmanagerConfig(ctx, tenant.ID, alertmanagerFile, templateFiles...); err != nil {
			return fmt.Errorf("failed to upload alertmanager config: %w", err)
		}
	}

	return nil
}

// AlertsList shows the rule groups currently stored for a cluster's tenant.
// Useful for verifying what a push actually landed on the backend.
func AlertsList(ctx context.Context, cluster, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	tenant, _, err := resolveTenant(cfg, cluster)
	if err != nil {
		return err
	}

	address := cfg.AlertingAddress()
	if address == "" {
		return fmt.Errorf("alerting address not configured: set MIMIR_ADDRESS or alerting.address")
	}

	return newMimirClient(address).ListRules(ctx, tenant.ID)
}

// AlertsLint validates a cluster's rule files and the routing table without
// contacting the backend.
func AlertsLint(cluster, configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	_, ruleDir, err := resolveTenant(cfg, cluster)
	if err != nil {
		return err
	}

	groups, err := alerts.Lint(ruleDir)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d rule groups OK\n", ruleDir, groups)

	if len(cfg.Alerting.Routes) > 0 {
		if _, err := alerts.NewRoutingTable(cfg.Alerting); err != nil {
			return fmt.Errorf("routing table invalid: %w", err)
		}
		fmt.Printf("routing: %d routes OK\n", len(cfg.Alerting.Routes))
	}

	return nil
}

// resolveTenant maps a cluster argument to its tenant and rule directory.
func resolveTenant(cfg *config.Config, cluster string) (config.TenantSpec, string, error) {
	tenants := cfg.GetTenants()
	tenant, ok := tenants[cluster]
	if !ok {
		names := make([]string, 0, len(tenants))
		for name := range tenants {
			names = append(names, name)
		}
		sort.Strings(names)
		return config.TenantSpec{}, "", fmt.Errorf("unknown cluster %q: valid clusters are %v", cluster, names)
	}

	ruleDir := tenant.RuleDir
	if !filepath.IsAbs(ruleDir) {
		ruleDir = filepath.Join(cfg.GetAlertsDir(), ruleDir)
	}
	return tenant, ruleDir, nil
}
