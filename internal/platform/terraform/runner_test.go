package terraform

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTerraform writes a shell script that records its arguments and exits
// with the given status, standing in for the real binary.
func fakeTerraform(t *testing.T, exitCode int) (binary, argsFile string) {
	t.Helper()
	dir := t.TempDir()
	binary = filepath.Join(dir, "terraform")
	argsFile = filepath.Join(dir, "args")

	script := "#!/bin/sh\necho \"$@\" >> " + argsFile + "\nexit " + map[int]string{0: "0", 1: "1"}[exitCode] + "\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0755))
	return binary, argsFile
}

func TestExecRunner_Apply(t *testing.T) {
	binary, argsFile := fakeTerraform(t, 0)
	var out bytes.Buffer
	r := &ExecRunner{Binary: binary, Stdout: &out, Stderr: &out}

	require.NoError(t, r.Apply(context.Background(), "terraform/aws/kubernetes"))

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-chdir=terraform/aws/kubernetes apply -input=false -auto-approve\n", string(recorded))
}

func TestExecRunner_Init(t *testing.T) {
	binary, argsFile := fakeTerraform(t, 0)
	var out bytes.Buffer
	r := &ExecRunner{Binary: binary, Stdout: &out, Stderr: &out}

	require.NoError(t, r.Init(context.Background(), "terraform/gcp/storage"))

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-chdir=terraform/gcp/storage init -input=false\n", string(recorded))
}

func TestExecRunner_Destroy(t *testing.T) {
	binary, argsFile := fakeTerraform(t, 0)
	var out bytes.Buffer
	r := &ExecRunner{Binary: binary, Stdout: &out, Stderr: &out}

	require.NoError(t, r.Destroy(context.Background(), "terraform/azure/monitoring"))

	recorded, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-chdir=terraform/azure/monitoring destroy -input=false -auto-approve\n", string(recorded))
}

func TestExecRunner_PropagatesFailure(t *testing.T) {
	binary, _ := fakeTerraform(t, 1)
	var out bytes.Buffer
	r := &ExecRunner{Binary: binary, Stdout: &out, Stderr: &out}

	err := r.Plan(context.Background(), "terraform/aws/networking")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terraform plan failed in terraform/aws/networking")
}
