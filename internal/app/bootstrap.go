// Package app wires the adapters, providers, and execution engine into
// the espshell bootstrap orchestrator.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/espshell/espshell/internal/adapters/command"
	"github.com/espshell/espshell/internal/adapters/filesystem"
	"github.com/espshell/espshell/internal/adapters/logging"
	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/domain/config"
	"github.com/espshell/espshell/internal/domain/execution"
	"github.com/espshell/espshell/internal/domain/platform"
	"github.com/espshell/espshell/internal/domain/session"
	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/provider/alias"
	"github.com/espshell/espshell/internal/provider/cargo"
	"github.com/espshell/espshell/internal/provider/espup"
	"github.com/espshell/espshell/internal/provider/toolchain"
)

// Bootstrap orchestrates one dev shell bootstrap for a resolved
// platform source. All supported platforms share the same step
// sequence, parameterized only by the source.
type Bootstrap struct {
	source   platform.Source
	compiler *compiler.Compiler
	planner  *execution.Planner
	executor *execution.Executor
	loader   *config.Loader
	runner   ports.CommandRunner
	fsys     ports.FileSystem
	logger   ports.Logger
	styles   styles
	out      io.Writer
}

// Option configures a Bootstrap.
type Option func(*Bootstrap)

// WithLogger overrides the default console logger.
func WithLogger(logger ports.Logger) Option {
	return func(b *Bootstrap) {
		b.logger = logger
	}
}

// WithRunner overrides the command runner used by every provider.
func WithRunner(runner ports.CommandRunner) Option {
	return func(b *Bootstrap) {
		b.runner = runner
	}
}

// WithFileSystem overrides the filesystem used by the loader and the
// espup provider.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(b *Bootstrap) {
		b.fsys = fs
	}
}

// New creates a Bootstrap for the given platform source. Installer
// output streams to out so external setup progress stays visible.
func New(out io.Writer, source platform.Source, opts ...Option) *Bootstrap {
	b := &Bootstrap{
		source:   source,
		planner:  execution.NewPlanner(),
		executor: execution.NewExecutor(),
		runner:   command.NewStreamingRunner(out, out),
		fsys:     filesystem.NewRealFileSystem(),
		logger:   logging.NewConsoleLogger(logging.WithOutput(out)),
		styles:   defaultStyles(),
		out:      out,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.wire(b.runner, b.fsys)
	return b
}

// NewForPlatform resolves the platform identifier and creates a
// Bootstrap for it. Unrecognized identifiers fail with
// platform.ErrUnsupportedPlatform.
func NewForPlatform(out io.Writer, id platform.ID, opts ...Option) (*Bootstrap, error) {
	source, err := platform.Resolve(id)
	if err != nil {
		return nil, err
	}
	return New(out, source, opts...), nil
}

// NewForHost detects the host platform and creates a Bootstrap for it.
func NewForHost(out io.Writer, opts ...Option) (*Bootstrap, error) {
	id, err := platform.Detect()
	if err != nil {
		return nil, err
	}
	return NewForPlatform(out, id, opts...)
}

// Entrypoints builds one Bootstrap per supported platform. Every entry
// shares the same step sequence, parameterized only by its source.
func Entrypoints(out io.Writer, opts ...Option) map[platform.ID]*Bootstrap {
	supported := platform.Supported()
	table := make(map[platform.ID]*Bootstrap, len(supported))
	for _, id := range supported {
		source, err := platform.Resolve(id)
		if err != nil {
			continue
		}
		table[id] = New(out, source, opts...)
	}
	return table
}

// wire registers the providers in bootstrap order: toolchain first,
// then the external espup bootstrap, then aliases, then cargo tools.
// Tool installs must never run before the espup bootstrap, so this
// registration order is load-bearing.
func (b *Bootstrap) wire(runner ports.CommandRunner, fs ports.FileSystem) {
	comp := compiler.NewCompiler()
	comp.RegisterProvider(toolchain.NewProvider(runner))
	comp.RegisterProvider(espup.NewProvider(runner, fs))
	comp.RegisterProvider(alias.NewProvider())
	comp.RegisterProvider(cargo.NewProvider(runner))
	b.compiler = comp
	b.loader = config.NewLoader(fs)
}

// Source returns the resolved platform source.
func (b *Bootstrap) Source() platform.Source {
	return b.source
}

// Plan loads the manifest and produces an execution plan for this
// platform. Fails if the manifest does not support the platform.
func (b *Bootstrap) Plan(ctx context.Context, configPath string) (*execution.Plan, error) {
	manifest, err := b.loader.Load(configPath)
	if err != nil {
		return nil, err
	}

	if !manifest.SupportsPlatform(b.source.Platform()) {
		return nil, fmt.Errorf("manifest %s does not support platform %s", configPath, b.source.Platform())
	}

	compileCtx := compiler.NewCompileContext(manifest.Raw()).WithSource(b.source)
	graph, err := b.compiler.Compile(compileCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest: %w", err)
	}

	plan, err := b.planner.Plan(ctx, graph)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

// Apply executes the plan strictly in order and returns one result per
// step plus the session environment the steps recorded. The first
// failure aborts the remaining sequence.
func (b *Bootstrap) Apply(ctx context.Context, plan *execution.Plan, dryRun bool) ([]execution.StepResult, *session.Environment, error) {
	runID := uuid.NewString()
	b.logger.Info(ctx, "bootstrap started",
		ports.F("run_id", runID),
		ports.F("platform", b.source.Platform().String()),
		ports.F("triple", b.source.Triple()),
		ports.F("steps", plan.Len()),
		ports.F("dry_run", dryRun),
	)
	start := time.Now()

	env := session.NewEnvironment()
	results := b.executor.WithDryRun(dryRun).Execute(ctx, plan, env)

	if err := execution.FirstError(results); err != nil {
		b.logger.Error(ctx, "bootstrap failed",
			ports.F("run_id", runID),
			ports.F("duration", time.Since(start).String()),
			ports.F("error", err.Error()),
		)
		return results, env, err
	}

	b.logger.Info(ctx, "bootstrap finished",
		ports.F("run_id", runID),
		ports.F("duration", time.Since(start).String()),
	)
	return results, env, nil
}

// Hook replays only the session-mutating steps (export script sourcing
// and alias registration) and returns the recorded environment. It
// never invokes installers, so it stays fast enough to eval on shell
// startup after a completed bootstrap.
func (b *Bootstrap) Hook(ctx context.Context, configPath string) (*session.Environment, error) {
	manifest, err := b.loader.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !manifest.SupportsPlatform(b.source.Platform()) {
		return nil, fmt.Errorf("manifest %s does not support platform %s", configPath, b.source.Platform())
	}

	compileCtx := compiler.NewCompileContext(manifest.Raw()).WithSource(b.source)
	graph, err := b.compiler.Compile(compileCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile manifest: %w", err)
	}
	steps, err := graph.TopologicalSort()
	if err != nil {
		return nil, err
	}

	env := session.NewEnvironment()
	runCtx := compiler.NewRunContext(ctx).WithSession(env)
	for _, step := range steps {
		if !mutatesSessionOnly(step.ID()) {
			continue
		}
		if err := step.Apply(runCtx); err != nil {
			return nil, err
		}
	}
	return env, nil
}

// mutatesSessionOnly reports whether a step touches nothing outside
// the session record.
func mutatesSessionOnly(id compiler.StepID) bool {
	return id.Provider() == "alias" || id.String() == "espup:export"
}

// PrintPlan writes a human-readable plan summary.
func (b *Bootstrap) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	b.printf("\n%s\n\n", b.styles.Title.Render(fmt.Sprintf("Bootstrap plan for %s", b.source)))

	if plan.IsEmpty() {
		b.printf("Nothing to do. The manifest produced no steps.\n")
		return
	}

	b.printf("Steps: %d total, %d to apply, %d satisfied\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		marker := b.styles.Satisfied.Render("✓")
		if entry.Status() == compiler.StatusNeedsApply {
			marker = b.styles.Pending.Render("+")
		}
		b.printf("  %s %s\n", marker, entry.Step().ID().String())

		if diff := entry.Diff(); !diff.IsEmpty() {
			b.printf("      %s\n", b.styles.Detail.Render(diff.Summary()))
		}
	}

	if plan.HasChanges() {
		b.printf("\nRun 'espshell up' to execute this plan.\n")
	}
}

// PrintResults writes the per-step execution outcome.
func (b *Bootstrap) PrintResults(results []execution.StepResult) {
	b.printf("\n%s\n\n", b.styles.Title.Render("Bootstrap results"))

	var succeeded, failed, skipped int
	for i := range results {
		id := results[i].StepID().String()
		switch results[i].Status() {
		case compiler.StatusSatisfied:
			succeeded++
			b.printf("  %s %s\n", b.styles.Satisfied.Render("✓"), id)
		case compiler.StatusFailed:
			failed++
			b.printf("  %s %s: %v\n", b.styles.Failed.Render("✗"), id, results[i].Error())
		case compiler.StatusSkipped:
			skipped++
			b.printf("  %s %s (skipped)\n", b.styles.Skipped.Render("-"), id)
		case compiler.StatusNeedsApply:
			b.printf("  %s %s (needs apply)\n", b.styles.Pending.Render("+"), id)
		case compiler.StatusUnknown:
			b.printf("  ? %s (unknown)\n", id)
		}
	}

	b.printf("\nSummary: %d succeeded, %d failed, %d skipped\n",
		succeeded, failed, skipped)
}

// RenderHook returns the eval-able shell snippet for the session
// environment recorded during Apply.
func (b *Bootstrap) RenderHook(env *session.Environment) string {
	return env.Render()
}

// printf writes to the output writer, ignoring errors.
func (b *Bootstrap) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(b.out, format, args...)
}
