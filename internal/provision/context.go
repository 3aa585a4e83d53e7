package provision

import (
	"context"
	"time"

	"github.com/stackops/stackctl/internal/config"
	"github.com/stackops/stackctl/internal/platform/terraform"
)

// ComponentResult records the outcome of one component phase.
type ComponentResult struct {
	// Skipped is true when the component directory does not exist.
	Skipped bool

	// Duration is how long the phase ran.
	Duration time.Duration
}

// State holds the accumulated results of provisioning phases.
// It is progressively populated as each phase completes.
type State struct {
	// Results maps each executed component to its outcome.
	Results map[config.Component]ComponentResult
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		Results: make(map[config.Component]ComponentResult),
	}
}

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config    *config.Config
	Cloud     config.Cloud
	State     *State
	Terraform terraform.Runner
	Observer  Observer
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, cloud config.Cloud, runner terraform.Runner) *Context {
	return &Context{
		Context:   ctx,
		Config:    cfg,
		Cloud:     cloud,
		State:     NewState(),
		Terraform: runner,
		Observer:  NewConsoleObserver(),
	}
}
