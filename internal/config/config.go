// Package config defines the stackctl configuration model and loading logic.
//
// Configuration lives in a single stackctl.yaml at the repository root and
// declares the project identity, the cluster descriptors per cloud, the
// alerting tenants and routing table, and the remote-state bucket settings.
// Everything is declared once and changed only by editing and re-applying.
package config

import (
	"errors"
	"fmt"
	"os"
)

// Default file and directory locations, relative to the working directory.
const (
	// DefaultConfigFile is the configuration file stackctl looks for.
	DefaultConfigFile = "stackctl.yaml"

	// DefaultTerraformDir is the root of the provisioning definitions,
	// organized as <terraform_dir>/<cloud>/<component>.
	DefaultTerraformDir = "terraform"

	// DefaultAlertsDir is the root of the alert rule directories,
	// organized as <alerts_dir>/<cluster>.
	DefaultAlertsDir = "alerts"
)

// Config holds the complete stackctl configuration.
type Config struct {
	// Project is the project name, used for resource naming and labels.
	// Must be DNS-safe: lowercase alphanumeric and hyphens, starts with a letter.
	Project string `yaml:"project"`

	// TerraformDir is the root of the provisioning definitions.
	// Defaults to "terraform".
	TerraformDir string `yaml:"terraform_dir,omitempty"`

	// Clusters are the managed cluster descriptors.
	Clusters []ClusterSpec `yaml:"clusters,omitempty"`

	// Alerting configures the multi-tenant alerting backend.
	Alerting AlertingConfig `yaml:"alerting,omitempty"`

	// State configures the remote-state bucket bootstrap.
	State StateConfig `yaml:"state,omitempty"`
}

// ClusterSpec describes one managed Kubernetes cluster.
// Declared once; changed only by editing and re-applying.
type ClusterSpec struct {
	// Name is the cluster name, DNS-safe.
	Name string `yaml:"name"`

	// Cloud is the provider the cluster runs on.
	Cloud Cloud `yaml:"cloud"`

	// Region is the provider region (e.g. eu-central-1, westeurope, europe-west3).
	Region string `yaml:"region"`

	// NodePool is the worker node pool sizing.
	NodePool NodePoolSpec `yaml:"node_pool"`

	// Labels are attached to every resource belonging to the cluster.
	Labels map[string]string `yaml:"labels,omitempty"`
}

// NodePoolSpec is the autoscaling range and instance type of a node pool.
type NodePoolSpec struct {
	// Min is the minimum node count the autoscaler may shrink to.
	Min int `yaml:"min"`

	// Max is the maximum node count the autoscaler may grow to.
	Max int `yaml:"max"`

	// Desired is the initial node count.
	Desired int `yaml:"desired"`

	// InstanceType is the provider instance type (e.g. t3.large).
	InstanceType string `yaml:"instance_type"`
}

// AlertingConfig configures the multi-tenant metrics backend.
type AlertingConfig struct {
	// Address is the base URL of the alerting backend's ruler API.
	// The MIMIR_ADDRESS environment variable takes precedence.
	Address string `yaml:"address,omitempty"`

	// AlertsDir is the root of the per-cluster rule directories.
	// Defaults to "alerts".
	AlertsDir string `yaml:"alerts_dir,omitempty"`

	// Tenants maps a cluster argument to its tenant binding.
	// Defaults to the devops/apps mapping when empty.
	Tenants map[string]TenantSpec `yaml:"tenants,omitempty"`

	// Receivers are the named notification destinations routes map to.
	Receivers []ReceiverSpec `yaml:"receivers,omitempty"`

	// Routes map label matchers to a receiver, evaluated first-match.
	Routes []RouteSpec `yaml:"routes,omitempty"`
}

// TenantSpec binds a cluster argument to a tenant id and rule directory.
type TenantSpec struct {
	// ID is the tenant identifier sent to the backend (e.g. "_devops").
	ID string `yaml:"id"`

	// RuleDir is the directory holding the tenant's rule files,
	// relative to AlertsDir when not absolute.
	RuleDir string `yaml:"rule_dir"`
}

// ReceiverSpec is a named notification destination.
type ReceiverSpec struct {
	// Name is the receiver name referenced by routes.
	Name string `yaml:"name"`

	// Type is the destination kind: "slack" or "pagerduty".
	Type string `yaml:"type"`

	// Target is the channel name or integration key.
	Target string `yaml:"target"`
}

// RouteSpec maps a matcher set to a receiver.
type RouteSpec struct {
	// Match are exact label matchers (severity, team, service).
	Match map[string]string `yaml:"match"`

	// Receiver is the name of the receiver alerts are sent to.
	Receiver string `yaml:"receiver"`
}

// StateConfig configures the S3-compatible bucket that holds the
// provisioning engine's remote state.
type StateConfig struct {
	// Endpoint is the S3-compatible endpoint URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// Region is the bucket region.
	Region string `yaml:"region,omitempty"`
}

// DefaultTenants is the built-in cluster-to-tenant mapping used when
// the config declares none.
func DefaultTenants() map[string]TenantSpec {
	return map[string]TenantSpec{
		"devops": {ID: "_devops", RuleDir: "devops"},
		"apps":   {ID: "_apps", RuleDir: "apps"},
	}
}

// GetTerraformDir returns the provisioning definitions root.
func (c *Config) GetTerraformDir() string {
	if c.TerraformDir != "" {
		return c.TerraformDir
	}
	return DefaultTerraformDir
}

// GetAlertsDir returns the alert rule root.
func (c *Config) GetAlertsDir() string {
	if c.Alerting.AlertsDir != "" {
		return c.Alerting.AlertsDir
	}
	return DefaultAlertsDir
}

// GetTenants returns the configured tenant mapping, falling back to the
// built-in devops/apps mapping.
func (c *Config) GetTenants() map[string]TenantSpec {
	if len(c.Alerting.Tenants) > 0 {
		return c.Alerting.Tenants
	}
	return DefaultTenants()
}

// AlertingAddress returns the backend address, with the MIMIR_ADDRESS
// environment variable taking precedence over the config value.
func (c *Config) AlertingAddress() string {
	if addr := os.Getenv("MIMIR_ADDRESS"); addr != "" {
		return addr
	}
	return c.Alerting.Address
}

// StateBucketName returns the remote-state bucket name for a cloud.
// The short cloud id is used, not the Stringer form, because the name
// must stay a valid bucket name.
func (c *Config) StateBucketName(cloud Cloud) string {
	return fmt.Sprintf("%s-tfstate-%s", c.Project, string(cloud))
}

// ClusterByName returns the cluster descriptor with the given name.
func (c *Config) ClusterByName(name string) (*ClusterSpec, bool) {
	for i := range c.Clusters {
		if c.Clusters[i].Name == name {
			return &c.Clusters[i], true
		}
	}
	return nil, false
}

// Validate validates the configuration and returns all violations joined.
func (c *Config) Validate() error {
	var errs []error

	if c.Project == "" {
		errs = append(errs, errors.New("project is required"))
	} else if !isValidDNSName(c.Project) {
		errs = append(errs, errors.New("project must be DNS-safe (lowercase alphanumeric and hyphens, must start with letter)"))
	}

	seen := make(map[string]bool, len(c.Clusters))
	for _, cluster := range c.Clusters {
		if err := cluster.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("cluster %q: %w", cluster.Name, err))
		}
		if seen[cluster.Name] {
			errs = append(errs, fmt.Errorf("cluster %q: duplicate name", cluster.Name))
		}
		seen[cluster.Name] = true
	}

	if err := c.validateAlerting(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate validates a single cluster descriptor.
func (s *ClusterSpec) Validate() error {
	var errs []error

	if s.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if !isValidDNSName(s.Name) {
		errs = append(errs, errors.New("name must be DNS-safe"))
	}

	if !s.Cloud.IsValid() {
		errs = append(errs, fmt.Errorf("cloud must be one of: %v", ValidClouds()))
	}

	if s.Region == "" {
		errs = append(errs, errors.New("region is required"))
	}

	if err := s.NodePool.Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Validate checks the node pool sizing invariants: min <= desired <= max,
// desired >= 1, non-empty instance type.
func (p *NodePoolSpec) Validate() error {
	var errs []error

	if p.Desired < 1 {
		errs = append(errs, errors.New("node_pool.desired must be at least 1"))
	}
	if p.Min > p.Desired {
		errs = append(errs, fmt.Errorf("node_pool.min (%d) must not exceed desired (%d)", p.Min, p.Desired))
	}
	if p.Desired > p.Max {
		errs = append(errs, fmt.Errorf("node_pool.desired (%d) must not exceed max (%d)", p.Desired, p.Max))
	}
	if p.InstanceType == "" {
		errs = append(errs, errors.New("node_pool.instance_type is required"))
	}

	return errors.Join(errs...)
}

// validateAlerting checks tenant bindings and that every route references
// a declared receiver.
func (c *Config) validateAlerting() error {
	var errs []error

	for name, tenant := range c.Alerting.Tenants {
		if tenant.ID == "" {
			errs = append(errs, fmt.Errorf("tenant %q: id is required", name))
		}
		if tenant.RuleDir == "" {
			errs = append(errs, fmt.Errorf("tenant %q: rule_dir is required", name))
		}
	}

	receivers := make(map[string]bool, len(c.Alerting.Receivers))
	for _, r := range c.Alerting.Receivers {
		if r.Name == "" {
			errs = append(errs, errors.New("receiver: name is required"))
			continue
		}
		if receivers[r.Name] {
			errs = append(errs, fmt.Errorf("receiver %q: duplicate name", r.Name))
		}
		receivers[r.Name] = true
		switch r.Type {
		case "slack", "pagerduty":
		default:
			errs = append(errs, fmt.Errorf("receiver %q: type must be slack or pagerduty", r.Name))
		}
	}

	for i, route := range c.Alerting.Routes {
		if route.Receiver == "" {
			errs = append(errs, fmt.Errorf("route %d: receiver is required", i))
			continue
		}
		if !receivers[route.Receiver] {
			errs = append(errs, fmt.Errorf("route %d: unknown receiver %q", i, route.Receiver))
		}
	}

	return errors.Join(errs...)
}
