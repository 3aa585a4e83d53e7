// Package provision sequences terraform invocations per cloud and component.
//
// Each component (networking, kubernetes, storage, monitoring) is one phase.
// Phases run strictly sequentially; the first failure aborts the remaining
// sequence and the error surfaces verbatim. A phase whose component
// directory does not exist is skipped, not failed, so partial layouts (a
// cloud without a monitoring directory, say) apply cleanly.
package provision

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stackops/stackctl/internal/config"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the provisioning logic for this phase.
	Run(ctx *Context) error
}

// Action selects between applying and destroying a component.
type Action string

const (
	// ActionApply provisions the component (init, plan, apply).
	ActionApply Action = "apply"
	// ActionDestroy tears the component down (init, destroy).
	ActionDestroy Action = "destroy"
)

// ComponentPhase provisions or destroys a single component directory.
type ComponentPhase struct {
	Component config.Component
	Action    Action
}

// Name implements Phase.
func (p *ComponentPhase) Name() string {
	return string(p.Component)
}

// Run implements Phase. The working directory is
// <terraform_dir>/<cloud>/<component>; a missing directory records a skip.
func (p *ComponentPhase) Run(ctx *Context) error {
	dir := filepath.Join(ctx.Config.GetTerraformDir(), string(ctx.Cloud), string(p.Component))

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		ctx.Observer.Event(Event{
			Type:    EventPhaseSkipped,
			Phase:   p.Name(),
			Message: fmt.Sprintf("directory %s does not exist, skipping", dir),
		})
		ctx.State.Results[p.Component] = ComponentResult{Skipped: true}
		return nil
	}

	if err := ctx.Terraform.Init(ctx, dir); err != nil {
		return err
	}

	switch p.Action {
	case ActionDestroy:
		return ctx.Terraform.Destroy(ctx, dir)
	default:
		if err := ctx.Terraform.Plan(ctx, dir); err != nil {
			return err
		}
		return ctx.Terraform.Apply(ctx, dir)
	}
}

// BuildPhases returns the phases for a component selection and action.
// Apply order is networking, kubernetes, storage, monitoring; destroy
// order is the exact reverse.
func BuildPhases(component config.Component, action Action) []Phase {
	var order []config.Component
	if action == ActionDestroy {
		order = component.DestroyOrder()
	} else {
		order = component.ApplyOrder()
	}

	phases := make([]Phase, 0, len(order))
	for _, c := range order {
		phases = append(phases, &ComponentPhase{Component: c, Action: action})
	}
	return phases
}

// RunPhases executes all provisioning phases sequentially, aborting on the
// first failure.
func RunPhases(ctx *Context, phases []Phase) error {
	start := time.Now()
	ctx.Observer.Printf("Starting %s run with %d phases...", ctx.Cloud, len(phases))

	for i, phase := range phases {
		phaseStart := time.Now()
		name := fmt.Sprintf("%s (%d/%d)", phase.Name(), i+1, len(phases))

		ctx.Observer.Event(Event{Type: EventPhaseStarted, Phase: name, Message: "starting"})

		if err := phase.Run(ctx); err != nil {
			ctx.Observer.Event(Event{Type: EventPhaseFailed, Phase: name, Message: err.Error()})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		elapsed := time.Since(phaseStart).Round(time.Millisecond)
		if result, ok := ctx.State.Results[config.Component(phase.Name())]; !ok || !result.Skipped {
			ctx.State.Results[config.Component(phase.Name())] = ComponentResult{Duration: elapsed}
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   name,
			Message: fmt.Sprintf("completed in %v", elapsed),
		})
	}

	ctx.Observer.Printf("Run completed in %v", time.Since(start).Round(time.Millisecond))
	return nil
}
