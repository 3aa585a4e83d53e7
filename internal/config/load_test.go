package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `project: monitoring-stack
terraform_dir: infra
clusters:
  - name: devops
    cloud: aws
    region: eu-central-1
    node_pool:
      min: 2
      max: 6
      desired: 3
      instance_type: t3.large
    labels:
      team: platform
alerting:
  address: http://mimir.internal:8080
  tenants:
    devops:
      id: _devops
      rule_dir: devops
    apps:
      id: _apps
      rule_dir: apps
  receivers:
    - name: slack-devops
      type: slack
      target: "#devops-alerts"
  routes:
    - match:
        severity: warning
      receiver: slack-devops
state:
  endpoint: https://s3.eu-central-1.amazonaws.com
  region: eu-central-1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stackctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "monitoring-stack", cfg.Project)
	assert.Equal(t, "infra", cfg.GetTerraformDir())
	require.Len(t, cfg.Clusters, 1)
	assert.Equal(t, 3, cfg.Clusters[0].NodePool.Desired)
	assert.Equal(t, "_apps", cfg.GetTenants()["apps"].ID)
	assert.Equal(t, "eu-central-1", cfg.State.Region)
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFile_UnknownField(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "project: demo\nunknown_field: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoadFile_Invalid(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "project: \"1bad\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stackctl.yaml")
	cfg := validConfig()

	require.NoError(t, Save(cfg, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Project, loaded.Project)
	assert.Equal(t, cfg.Clusters, loaded.Clusters)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := FindConfigFile()
	require.Error(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(sampleYAML), 0600))

	path, err := FindConfigFile()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, path)
}
