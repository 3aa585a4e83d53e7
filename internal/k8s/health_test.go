package k8s

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func node(name string, ready bool, labels map[string]string) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name, Labels: labels},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
			NodeInfo: corev1.NodeSystemInfo{KubeletVersion: "v1.32.0"},
		},
	}
}

func TestCheckNodes(t *testing.T) {
	client := fake.NewClientset(
		node("worker-1", true, nil),
		node("worker-2", true, nil),
		node("worker-3", false, nil),
	)

	health, err := CheckNodes(context.Background(), client, "")
	require.NoError(t, err)

	assert.Equal(t, 3, health.Total)
	assert.Equal(t, 2, health.Ready)
	assert.False(t, health.Healthy())
	require.Len(t, health.Nodes, 3)
	assert.Equal(t, "v1.32.0", health.Nodes[0].Version)
}

func TestCheckNodes_AllReady(t *testing.T) {
	client := fake.NewClientset(
		node("worker-1", true, nil),
		node("worker-2", true, nil),
	)

	health, err := CheckNodes(context.Background(), client, "")
	require.NoError(t, err)
	assert.True(t, health.Healthy())
}

func TestCheckNodes_Selector(t *testing.T) {
	client := fake.NewClientset(
		node("devops-1", true, map[string]string{"pool": "devops"}),
		node("apps-1", false, map[string]string{"pool": "apps"}),
	)

	health, err := CheckNodes(context.Background(), client, "pool=devops")
	require.NoError(t, err)
	assert.Equal(t, 1, health.Total)
	assert.True(t, health.Healthy())
}

func TestNodeHealth_Healthy_Empty(t *testing.T) {
	h := &NodeHealth{}
	assert.False(t, h.Healthy())
}

func TestIsNodeReady_NoCondition(t *testing.T) {
	n := &corev1.Node{}
	assert.False(t, isNodeReady(n))
}
