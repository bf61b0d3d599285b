package compiler

// Step is an ordered unit of bootstrap work: a guard predicate (Check)
// and an action (Apply). Steps execute strictly in sequence; ordering
// between providers is expressed through DependsOn.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() StepID

	// DependsOn returns the IDs of steps that must complete before this one.
	DependsOn() []StepID

	// Check determines the current status of this step.
	// Returns StatusSatisfied if no action is needed, StatusNeedsApply if
	// the install action must run. Inherently external steps always
	// report StatusNeedsApply; their idempotence lives in the external
	// tool, not here.
	Check(ctx RunContext) (StepStatus, error)

	// Plan returns the diff describing what Apply will do.
	Plan(ctx RunContext) (Diff, error)

	// Apply executes the step's action. Running the full sequence twice
	// must be a no-op the second time, except for inherently external
	// steps.
	Apply(ctx RunContext) error

	// Explain returns human-readable context for this step.
	Explain(ctx ExplainContext) Explanation
}
