package config

import "strings"

// Cloud is a supported cloud provider.
type Cloud string

const (
	// CloudAWS targets Amazon Web Services (EKS, S3).
	CloudAWS Cloud = "aws"
	// CloudAzure targets Microsoft Azure (AKS, Blob Storage).
	CloudAzure Cloud = "azure"
	// CloudGCP targets Google Cloud Platform (GKE, Cloud Storage).
	CloudGCP Cloud = "gcp"
)

// ValidClouds returns all valid cloud providers.
func ValidClouds() []Cloud {
	return []Cloud{CloudAWS, CloudAzure, CloudGCP}
}

// IsValid returns true if the cloud is a supported provider.
func (c Cloud) IsValid() bool {
	switch c {
	case CloudAWS, CloudAzure, CloudGCP:
		return true
	default:
		return false
	}
}

// String returns a human-readable description of the cloud.
func (c Cloud) String() string {
	switch c {
	case CloudAWS:
		return "aws (Amazon Web Services)"
	case CloudAzure:
		return "azure (Microsoft Azure)"
	case CloudGCP:
		return "gcp (Google Cloud Platform)"
	default:
		return string(c)
	}
}

// Component is a provisionable infrastructure component.
type Component string

const (
	// ComponentNetworking provisions VPCs, subnets, and routing.
	ComponentNetworking Component = "networking"
	// ComponentKubernetes provisions the managed Kubernetes cluster and node pools.
	ComponentKubernetes Component = "kubernetes"
	// ComponentStorage provisions object storage buckets and IAM bindings.
	ComponentStorage Component = "storage"
	// ComponentMonitoring provisions the monitoring stack resources.
	ComponentMonitoring Component = "monitoring"
	// ComponentAll selects every component in dependency order.
	ComponentAll Component = "all"
)

// ValidComponents returns all valid components, including the "all" pseudo-component.
func ValidComponents() []Component {
	return []Component{ComponentNetworking, ComponentKubernetes, ComponentStorage, ComponentMonitoring, ComponentAll}
}

// IsValid returns true if the component is recognized.
func (c Component) IsValid() bool {
	switch c {
	case ComponentNetworking, ComponentKubernetes, ComponentStorage, ComponentMonitoring, ComponentAll:
		return true
	default:
		return false
	}
}

// ApplyOrder returns the components applied for this selection, in
// dependency order. Networking comes first because every other component
// attaches to it; monitoring comes last because it scrapes the rest.
func (c Component) ApplyOrder() []Component {
	if c != ComponentAll {
		return []Component{c}
	}
	return []Component{ComponentNetworking, ComponentKubernetes, ComponentStorage, ComponentMonitoring}
}

// DestroyOrder returns the components destroyed for this selection,
// the exact reverse of ApplyOrder.
func (c Component) DestroyOrder() []Component {
	order := c.ApplyOrder()
	reversed := make([]Component, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		reversed = append(reversed, order[i])
	}
	return reversed
}

// isValidDNSName checks if a string is a valid DNS name.
// Must be lowercase, alphanumeric with hyphens, start with a letter, max 63 chars.
func isValidDNSName(name string) bool {
	if len(name) == 0 || len(name) > 63 {
		return false
	}
	if name[0] < 'a' || name[0] > 'z' {
		return false
	}
	last := name[len(name)-1]
	if (last < 'a' || last > 'z') && (last < '0' || last > '9') {
		return false
	}
	for _, c := range name {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
			return false
		}
	}
	if strings.Contains(name, "--") {
		return false
	}
	return true
}
