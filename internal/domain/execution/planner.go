package execution

import (
	"context"
	"fmt"

	"github.com/espshell/espshell/internal/domain/compiler"
)

// Planner generates a Plan from a StepGraph by checking each step's
// guard predicate. Planning never mutates the system.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step and returns the plan in execution order.
func (p *Planner) Plan(ctx context.Context, graph *compiler.StepGraph) (*Plan, error) {
	steps, err := graph.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to sort steps: %w", err)
	}

	plan := NewPlan()
	runCtx := compiler.NewRunContext(ctx)

	for _, step := range steps {
		entry, err := p.planStep(step, runCtx)
		if err != nil {
			return nil, fmt.Errorf("failed to plan step %q: %w", step.ID().String(), err)
		}
		plan.Add(entry)
	}

	return plan, nil
}

func (p *Planner) planStep(step compiler.Step, ctx compiler.RunContext) (PlanEntry, error) {
	status, err := step.Check(ctx)
	if err != nil {
		return PlanEntry{}, fmt.Errorf("check failed: %w", err)
	}

	var diff compiler.Diff
	if status == compiler.StatusNeedsApply {
		diff, err = step.Plan(ctx)
		if err != nil {
			return PlanEntry{}, fmt.Errorf("plan failed: %w", err)
		}
	}

	return NewPlanEntry(step, status, diff), nil
}
