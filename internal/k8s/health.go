// Package k8s inspects provisioned clusters through the Kubernetes API.
//
// stackctl never mutates cluster state; it only reads node status to answer
// "did the provisioning step actually produce a healthy node pool".
package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// NodeStatus is the readiness of a single node.
type NodeStatus struct {
	Name    string `json:"name"`
	Ready   bool   `json:"ready"`
	Version string `json:"version,omitempty"`
}

// NodeHealth summarizes node readiness for a cluster.
type NodeHealth struct {
	Total int          `json:"total"`
	Ready int          `json:"ready"`
	Nodes []NodeStatus `json:"nodes"`
}

// Healthy returns true when every node is ready and at least one exists.
func (h *NodeHealth) Healthy() bool {
	return h.Total > 0 && h.Ready == h.Total
}

// NewClient builds a Kubernetes clientset from a kubeconfig file.
func NewClient(kubeconfigPath string) (kubernetes.Interface, error) {
	cfg, err := clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	client, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return client, nil
}

// CheckNodes lists all nodes and reports their readiness.
// An optional label selector restricts the check to one node pool.
func CheckNodes(ctx context.Context, client kubernetes.Interface, selector string) (*NodeHealth, error) {
	nodes, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		return nil, fmt.Errorf("failed to list nodes: %w", err)
	}

	health := &NodeHealth{Total: len(nodes.Items)}
	for _, node := range nodes.Items {
		ready := isNodeReady(&node)
		if ready {
			health.Ready++
		}
		health.Nodes = append(health.Nodes, NodeStatus{
			Name:    node.Name,
			Ready:   ready,
			Version: node.Status.NodeInfo.KubeletVersion,
		})
	}

	return health, nil
}

// isNodeReady reports whether the node's Ready condition is true.
func isNodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}
