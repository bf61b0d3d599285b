package execution

import (
	"context"
	"time"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/domain/session"
)

// Executor runs a Plan strictly in order. There is no retry and no
// rollback: a failed step aborts the rest of the sequence, and the
// operator re-runs the bootstrap after fixing the cause.
type Executor struct {
	dryRun bool
}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithDryRun returns an Executor that simulates execution without applying.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	return &Executor{dryRun: dryRun}
}

// Execute runs all plan entries in order, threading the given session
// record through every step. The first failure aborts the remainder of
// the sequence: every later entry is reported as skipped, never run.
// Returns one result per entry.
func (e *Executor) Execute(ctx context.Context, plan *Plan, env *session.Environment) []StepResult {
	results := make([]StepResult, 0, plan.Len())
	aborted := false

	runCtx := compiler.NewRunContext(ctx).WithDryRun(e.dryRun).WithSession(env)

	for _, entry := range plan.Entries() {
		select {
		case <-ctx.Done():
			return results
		default:
		}

		if aborted {
			results = append(results, NewStepResult(entry.Step().ID(), compiler.StatusSkipped, nil))
			continue
		}

		result := e.executeEntry(entry, runCtx)
		results = append(results, result)

		if result.Status() == compiler.StatusFailed {
			aborted = true
		}
	}

	return results
}

func (e *Executor) executeEntry(entry PlanEntry, ctx compiler.RunContext) StepResult {
	step := entry.Step()
	stepID := step.ID()

	if entry.Status() == compiler.StatusSatisfied {
		return NewStepResult(stepID, compiler.StatusSatisfied, nil)
	}

	if ctx.DryRun() {
		return NewStepResult(stepID, entry.Status(), nil).WithDiff(entry.Diff())
	}

	start := time.Now()
	err := step.Apply(ctx)
	duration := time.Since(start)

	if err != nil {
		return NewStepResult(stepID, compiler.StatusFailed, err).WithDuration(duration)
	}

	return NewStepResult(stepID, compiler.StatusSatisfied, nil).
		WithDuration(duration).
		WithDiff(entry.Diff())
}

// FirstError returns the first step failure in execution order, or nil.
func FirstError(results []StepResult) error {
	for i := range results {
		if results[i].Error() != nil {
			return results[i].Error()
		}
	}
	return nil
}
