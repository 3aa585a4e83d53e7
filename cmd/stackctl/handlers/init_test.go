package handlers

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops/stackctl/internal/config"
)

func stubWizard(result *config.WizardResult, err error) {
	runWizard = func(_ context.Context) (*config.WizardResult, error) {
		return result, err
	}
}

func TestInit(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	stubWizard(&config.WizardResult{
		Project:      "monitoring-stack",
		Cloud:        config.CloudAWS,
		ClusterName:  "devops",
		Region:       "eu-central-1",
		WorkerCount:  2,
		InstanceType: "t3.large",
		Monitoring:   true,
	}, nil)

	var savedPath string
	var savedCfg *config.Config
	saveConfig = func(cfg *config.Config, path string) error {
		savedCfg, savedPath = cfg, path
		return nil
	}

	err := Init(context.Background(), "stackctl.yaml", false)
	require.NoError(t, err)

	assert.Equal(t, "stackctl.yaml", savedPath)
	require.NotNil(t, savedCfg)
	assert.Equal(t, "monitoring-stack", savedCfg.Project)
	require.Len(t, savedCfg.Clusters, 1)
	assert.Equal(t, config.CloudAWS, savedCfg.Clusters[0].Cloud)
}

func TestInit_ExistingFileWithoutForce(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return true }

	err := Init(context.Background(), "stackctl.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_ForceOverwrites(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return true }
	stubWizard(&config.WizardResult{
		Project:      "demo",
		Cloud:        config.CloudGCP,
		ClusterName:  "apps",
		Region:       "europe-west3",
		WorkerCount:  1,
		InstanceType: "e2-standard-4",
	}, nil)

	saved := false
	saveConfig = func(_ *config.Config, _ string) error {
		saved = true
		return nil
	}

	err := Init(context.Background(), "stackctl.yaml", true)
	require.NoError(t, err)
	assert.True(t, saved)
}

// The suggested next-step commands must use the short cloud id, not the
// verbose Cloud description, so they can be pasted into a shell.
func TestPrintInitSuccess_CopyPasteableCommands(t *testing.T) {
	cfg := &config.Config{
		Project: "monitoring-stack",
		Clusters: []config.ClusterSpec{
			{
				Name:   "devops",
				Cloud:  config.CloudAWS,
				Region: "eu-central-1",
				NodePool: config.NodePoolSpec{
					Min: 1, Max: 4, Desired: 2, InstanceType: "t3.large",
				},
			},
		},
	}

	var buf bytes.Buffer
	printInitSuccess(&buf, "stackctl.yaml", cfg)

	out := buf.String()
	assert.Contains(t, out, "stackctl state bootstrap aws\n")
	assert.Contains(t, out, "stackctl apply aws all\n")
	assert.NotContains(t, out, "Amazon Web Services")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveAndRestoreFactories(t)

	fileExists = func(_ string) bool { return false }
	stubWizard(nil, errors.New("wizard canceled: user aborted"))

	err := Init(context.Background(), "stackctl.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}
