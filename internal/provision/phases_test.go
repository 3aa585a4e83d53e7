package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackops/stackctl/internal/config"
)

// recordingRunner records every terraform invocation as "<verb> <dir>".
type recordingRunner struct {
	calls   []string
	failOn  string
	failErr error
}

func (r *recordingRunner) record(verb, dir string) error {
	call := verb + " " + dir
	r.calls = append(r.calls, call)
	if r.failOn != "" && call == r.failOn {
		return r.failErr
	}
	return nil
}

func (r *recordingRunner) Init(_ context.Context, dir string) error    { return r.record("init", dir) }
func (r *recordingRunner) Plan(_ context.Context, dir string) error    { return r.record("plan", dir) }
func (r *recordingRunner) Apply(_ context.Context, dir string) error   { return r.record("apply", dir) }
func (r *recordingRunner) Destroy(_ context.Context, dir string) error { return r.record("destroy", dir) }

// terraformLayout creates <root>/aws/<component> directories for the given components.
func terraformLayout(t *testing.T, components ...config.Component) string {
	t.Helper()
	root := t.TempDir()
	for _, c := range components {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "aws", string(c)), 0755))
	}
	return root
}

func newTestContext(t *testing.T, root string, runner *recordingRunner) *Context {
	t.Helper()
	cfg := &config.Config{Project: "demo", TerraformDir: root}
	return NewContext(context.Background(), cfg, config.CloudAWS, runner)
}

func TestRunPhases_AllComponentsInOrder(t *testing.T) {
	root := terraformLayout(t,
		config.ComponentNetworking,
		config.ComponentKubernetes,
		config.ComponentStorage,
		config.ComponentMonitoring,
	)
	runner := &recordingRunner{}
	ctx := newTestContext(t, root, runner)

	err := RunPhases(ctx, BuildPhases(config.ComponentAll, ActionApply))
	require.NoError(t, err)

	expected := []string{
		"init " + filepath.Join(root, "aws", "networking"),
		"plan " + filepath.Join(root, "aws", "networking"),
		"apply " + filepath.Join(root, "aws", "networking"),
		"init " + filepath.Join(root, "aws", "kubernetes"),
		"plan " + filepath.Join(root, "aws", "kubernetes"),
		"apply " + filepath.Join(root, "aws", "kubernetes"),
		"init " + filepath.Join(root, "aws", "storage"),
		"plan " + filepath.Join(root, "aws", "storage"),
		"apply " + filepath.Join(root, "aws", "storage"),
		"init " + filepath.Join(root, "aws", "monitoring"),
		"plan " + filepath.Join(root, "aws", "monitoring"),
		"apply " + filepath.Join(root, "aws", "monitoring"),
	}
	assert.Equal(t, expected, runner.calls)
}

func TestRunPhases_SkipsMissingDirectories(t *testing.T) {
	// Only networking and monitoring exist; kubernetes and storage must be
	// skipped without failing the run.
	root := terraformLayout(t, config.ComponentNetworking, config.ComponentMonitoring)
	runner := &recordingRunner{}
	ctx := newTestContext(t, root, runner)

	err := RunPhases(ctx, BuildPhases(config.ComponentAll, ActionApply))
	require.NoError(t, err)

	expected := []string{
		"init " + filepath.Join(root, "aws", "networking"),
		"plan " + filepath.Join(root, "aws", "networking"),
		"apply " + filepath.Join(root, "aws", "networking"),
		"init " + filepath.Join(root, "aws", "monitoring"),
		"plan " + filepath.Join(root, "aws", "monitoring"),
		"apply " + filepath.Join(root, "aws", "monitoring"),
	}
	assert.Equal(t, expected, runner.calls)

	assert.True(t, ctx.State.Results[config.ComponentKubernetes].Skipped)
	assert.True(t, ctx.State.Results[config.ComponentStorage].Skipped)
	assert.False(t, ctx.State.Results[config.ComponentNetworking].Skipped)
}

func TestRunPhases_AbortsOnFirstFailure(t *testing.T) {
	root := terraformLayout(t,
		config.ComponentNetworking,
		config.ComponentKubernetes,
		config.ComponentStorage,
	)
	runner := &recordingRunner{
		failOn:  "apply " + filepath.Join(root, "aws", "kubernetes"),
		failErr: errors.New("quota exceeded"),
	}
	ctx := newTestContext(t, root, runner)

	err := RunPhases(ctx, BuildPhases(config.ComponentAll, ActionApply))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kubernetes phase failed")
	assert.Contains(t, err.Error(), "quota exceeded")

	// Nothing after the failing phase ran.
	for _, call := range runner.calls {
		assert.NotContains(t, call, "storage")
	}
}

func TestRunPhases_DestroyReverseOrder(t *testing.T) {
	root := terraformLayout(t,
		config.ComponentNetworking,
		config.ComponentKubernetes,
		config.ComponentStorage,
		config.ComponentMonitoring,
	)
	runner := &recordingRunner{}
	ctx := newTestContext(t, root, runner)

	err := RunPhases(ctx, BuildPhases(config.ComponentAll, ActionDestroy))
	require.NoError(t, err)

	expected := []string{
		"init " + filepath.Join(root, "aws", "monitoring"),
		"destroy " + filepath.Join(root, "aws", "monitoring"),
		"init " + filepath.Join(root, "aws", "storage"),
		"destroy " + filepath.Join(root, "aws", "storage"),
		"init " + filepath.Join(root, "aws", "kubernetes"),
		"destroy " + filepath.Join(root, "aws", "kubernetes"),
		"init " + filepath.Join(root, "aws", "networking"),
		"destroy " + filepath.Join(root, "aws", "networking"),
	}
	assert.Equal(t, expected, runner.calls)
}

func TestBuildPhases_SingleComponent(t *testing.T) {
	phases := BuildPhases(config.ComponentStorage, ActionApply)
	require.Len(t, phases, 1)
	assert.Equal(t, "storage", phases[0].Name())
}
