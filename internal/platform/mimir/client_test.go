package mimir

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeMimirtool(t *testing.T, exitCode int) (binary, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	binary = filepath.Join(dir, "mimirtool")
	argsFile = filepath.Join(dir, "args")

	script := "#!/bin/sh\necho \"$@\" >> " + argsFile + "\nexit " + map[int]string{0: "0", 1: "1"}[exitCode] + "\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))
	return binary, argsFile
}

func TestExecClient_LoadRules(t *testing.T) {
	binary, argsFile := fakeMimirtool(t, 0)
	var out bytes.Buffer
	c := &ExecClient{Address: "http://mimir:8080", Binary: binary, Stdout: &out, Stderr: &out}

	require.NoError(t, c.LoadRules(context.Background(), "_devops", "alerts/devops/kubernetes.yaml"))

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "rules load alerts/devops/kubernetes.yaml --address=http://mimir:8080 --id=_devops\n", string(recorded))
}

func TestExecClient_LoadAlertmanagerConfig(t *testing.T) {
	binary, argsFile := fakeMimirtool(t, 0)
	var out bytes.Buffer
	c := &ExecClient{Address: "http://mimir:8080", Binary: binary, Stdout: &out, Stderr: &out}

	require.NoError(t, c.LoadAlertmanagerConfig(context.Background(), "_apps", "alertmanager.yaml", "slack.tmpl"))

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "alertmanager load alertmanager.yaml slack.tmpl --address=http://mimir:8080 --id=_apps\n", string(recorded))
}

func TestExecClient_PropagatesFailure(t *testing.T) {
	binary, _ := fakeMimirtool(t, 1)
	var out bytes.Buffer
	c := &ExecClient{Address: "http://mimir:8080", Binary: binary, Stdout: &out, Stderr: &out}

	err := c.LoadRules(context.Background(), "_devops", "alerts/devops/kubernetes.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mimirtool rules load failed for tenant _devops")
}
