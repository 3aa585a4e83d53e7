package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/stackops/stackctl/internal/k8s"
)

// Factory function variables for health - can be replaced in tests.
var (
	// newKubeClient builds a clientset from a kubeconfig path.
	newKubeClient = func(kubeconfigPath string) (kubernetes.Interface, error) {
		return k8s.NewClient(kubeconfigPath)
	}

	// checkNodes lists node readiness.
	checkNodes = k8s.CheckNodes

	// healthPollInterval is the delay between watch iterations.
	healthPollInterval = 5 * time.Second
)

// Health reports node readiness for a provisioned cluster.
//
// The kubeconfig defaults to kubeconfig-<cluster> in the working directory,
// which is where the kubernetes component writes it. Returns an error when
// any node is unready so CI gates can use the exit status.
func Health(ctx context.Context, cluster, kubeconfigPath, selector string, jsonOutput, watch bool) error {
	if kubeconfigPath == "" {
		kubeconfigPath = "kubeconfig-" + cluster
	}

	client, err := newKubeClient(kubeconfigPath)
	if err != nil {
		return err
	}

	if watch {
		return healthWatch(ctx, client, cluster, selector, jsonOutput)
	}
	return healthShow(ctx, client, cluster, selector, jsonOutput)
}

// healthShow runs one readiness check and prints it.
func healthShow(ctx context.Context, client kubernetes.Interface, cluster, selector string, jsonOutput bool) error {
	health, err := checkNodes(ctx, client, selector)
	if err != nil {
		return err
	}

	if jsonOutput {
		data, err := json.MarshalIndent(health, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		fmt.Println(string(data))
	} else {
		fmt.Printf("Cluster %s: %d/%d nodes ready\n", cluster, health.Ready, health.Total)
		for _, node := range health.Nodes {
			status := "NotReady"
			if node.Ready {
				status = "Ready"
			}
			fmt.Printf("  %-30s %-10s %s\n", node.Name, status, node.Version)
		}
	}

	if !health.Healthy() {
		return fmt.Errorf("cluster %s unhealthy: %d/%d nodes ready", cluster, health.Ready, health.Total)
	}
	return nil
}

// healthWatch polls readiness until the context is cancelled.
func healthWatch(ctx context.Context, client kubernetes.Interface, cluster, selector string, jsonOutput bool) error {
	ticker := time.NewTicker(healthPollInterval)
	defer ticker.Stop()

	if err := healthShow(ctx, client, cluster, selector, jsonOutput); err != nil {
		fmt.Printf("Error: %v\n", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := healthShow(ctx, client, cluster, selector, jsonOutput); err != nil {
				fmt.Printf("Error: %v\n", err)
			}
		}
	}
}
