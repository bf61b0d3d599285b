package compiler

import (
	"context"

	"github.com/espshell/espshell/internal/domain/session"
)

// RunContext carries per-run state into Check, Plan and Apply: the
// cancellation context, the dry-run flag, and the session environment
// record that steps write their mutations into.
type RunContext struct {
	ctx     context.Context
	dryRun  bool
	session *session.Environment
}

// NewRunContext creates a RunContext with a fresh session record.
func NewRunContext(ctx context.Context) RunContext {
	return RunContext{
		ctx:     ctx,
		session: session.NewEnvironment(),
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// Session returns the environment mutation record for this run.
func (r RunContext) Session() *session.Environment {
	return r.session
}

// WithDryRun returns a RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	r.dryRun = dryRun
	return r
}

// WithSession returns a RunContext writing into the given record.
func (r RunContext) WithSession(env *session.Environment) RunContext {
	r.session = env
	return r
}

// ExplainContext provides context for generating step explanations.
type ExplainContext struct {
	verbose bool
}

// NewExplainContext creates a new ExplainContext.
func NewExplainContext() ExplainContext {
	return ExplainContext{}
}

// Verbose returns whether verbose explanations are requested.
func (e ExplainContext) Verbose() bool {
	return e.verbose
}

// WithVerbose returns an ExplainContext with verbose mode set.
func (e ExplainContext) WithVerbose(verbose bool) ExplainContext {
	e.verbose = verbose
	return e
}
