// Package terraform wraps the terraform binary behind a small Runner interface.
//
// stackctl does not reimplement any provisioning logic: every resource is
// declared in HCL under the configured terraform root and this package only
// sequences init/plan/apply/destroy invocations, one working directory at a
// time. Exit status and output surface verbatim from the underlying tool.
package terraform

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes terraform commands against a single working directory.
type Runner interface {
	// Init runs "terraform init" in the given directory.
	Init(ctx context.Context, dir string) error

	// Plan runs "terraform plan" in the given directory.
	Plan(ctx context.Context, dir string) error

	// Apply runs "terraform apply -auto-approve" in the given directory.
	Apply(ctx context.Context, dir string) error

	// Destroy runs "terraform destroy -auto-approve" in the given directory.
	Destroy(ctx context.Context, dir string) error
}

// ExecRunner runs the real terraform binary found on PATH.
type ExecRunner struct {
	// Binary overrides the terraform binary name. Defaults to "terraform".
	Binary string

	// Stdout and Stderr receive the tool's output. Default to the
	// process streams so operators see terraform output unmodified.
	Stdout io.Writer
	Stderr io.Writer
}

// NewExecRunner returns a Runner that invokes terraform on PATH,
// streaming output to the current process's stdout/stderr.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Init implements Runner.
func (r *ExecRunner) Init(ctx context.Context, dir string) error {
	return r.run(ctx, dir, "init", "-input=false")
}

// Plan implements Runner.
func (r *ExecRunner) Plan(ctx context.Context, dir string) error {
	return r.run(ctx, dir, "plan", "-input=false")
}

// Apply implements Runner.
func (r *ExecRunner) Apply(ctx context.Context, dir string) error {
	return r.run(ctx, dir, "apply", "-input=false", "-auto-approve")
}

// Destroy implements Runner.
func (r *ExecRunner) Destroy(ctx context.Context, dir string) error {
	return r.run(ctx, dir, "destroy", "-input=false", "-auto-approve")
}

// run invokes terraform with -chdir so relative module and state paths
// resolve inside the component directory.
func (r *ExecRunner) run(ctx context.Context, dir string, args ...string) error {
	binary := r.Binary
	if binary == "" {
		binary = "terraform"
	}

	full := append([]string{"-chdir=" + dir}, args...)
	// #nosec G204 - binary and arguments come from trusted Runner configuration, not user input
	cmd := exec.CommandContext(ctx, binary, full...)
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("terraform %s failed in %s: %w", args[0], dir, err)
	}
	return nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return os.Stdout
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
