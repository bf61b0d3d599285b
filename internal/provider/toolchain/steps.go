package toolchain

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/validation"
)

// InstallError indicates a rustup invocation exited non-zero. It is
// fatal to the bootstrap; rustup's own diagnostics pass through in
// Output.
type InstallError struct {
	Channel string
	Command string
	Output  string
}

// Error returns the formatted error message.
func (e *InstallError) Error() string {
	return fmt.Sprintf("%s failed for toolchain %s: %s", e.Command, e.Channel, strings.TrimSpace(e.Output))
}

// InstallStep ensures the pinned toolchain is installed and selected
// as the default. Idempotent: a matching active toolchain is left
// untouched.
type InstallStep struct {
	channel string
	id      compiler.StepID
	runner  ports.CommandRunner
}

// NewInstallStep creates a new InstallStep.
func NewInstallStep(channel string, runner ports.CommandRunner) *InstallStep {
	id := compiler.MustNewStepID("toolchain:install:" + channel)
	return &InstallStep{
		channel: channel,
		id:      id,
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *InstallStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *InstallStep) DependsOn() []compiler.StepID {
	return nil
}

// Check compares the active toolchain against the pinned channel.
func (s *InstallStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "rustup", "show", "active-toolchain")
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if !result.Success() {
		// No default toolchain configured yet.
		return compiler.StatusNeedsApply, nil
	}

	if activeMatchesChannel(result.Stdout, s.channel) {
		return compiler.StatusSatisfied, nil
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *InstallStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.ActionInstall, "toolchain", s.channel, "rustup default"), nil
}

// Apply installs the toolchain and sets it as the default.
func (s *InstallStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateChannel(s.channel); err != nil {
		return fmt.Errorf("invalid toolchain channel: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "rustup", "toolchain", "install", s.channel)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &InstallError{Channel: s.channel, Command: "rustup toolchain install", Output: result.Stderr}
	}

	result, err = s.runner.Run(ctx.Context(), "rustup", "default", s.channel)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &InstallError{Channel: s.channel, Command: "rustup default", Output: result.Stderr}
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *InstallStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Pin Rust Toolchain",
		fmt.Sprintf("Installs Rust %s via rustup and selects it as the default toolchain.", s.channel),
		[]string{"https://rust-lang.github.io/rustup/concepts/toolchains.html"},
	)
}

// activeMatchesChannel reports whether `rustup show active-toolchain`
// output names the pinned channel. Output looks like
// "1.84.0-x86_64-unknown-linux-gnu (default)".
func activeMatchesChannel(stdout, channel string) bool {
	active := strings.TrimSpace(stdout)
	if active == "" {
		return false
	}
	if fields := strings.Fields(active); len(fields) > 0 {
		active = fields[0]
	}

	// Versioned channels compare by version so "1.84.0" matches
	// "1.84.0-x86_64-unknown-linux-gnu"; named channels (stable,
	// nightly-2024-06-01) compare by prefix.
	if semver.IsValid("v" + channel) {
		activeVersion := active
		if idx := strings.Index(active, "-"); idx > 0 {
			activeVersion = active[:idx]
		}
		return semver.Compare("v"+activeVersion, "v"+channel) == 0
	}
	return strings.HasPrefix(active, channel)
}

// ComponentStep ensures a toolchain component (rust-analyzer, clippy)
// is installed. Idempotent: present components are left untouched.
type ComponentStep struct {
	name   string
	id     compiler.StepID
	deps   []compiler.StepID
	runner ports.CommandRunner
}

// NewComponentStep creates a ComponentStep that runs after the given
// toolchain install step.
func NewComponentStep(name string, after compiler.StepID, runner ports.CommandRunner) *ComponentStep {
	id := compiler.MustNewStepID("toolchain:component:" + name)
	deps := []compiler.StepID{}
	if !after.IsZero() {
		deps = append(deps, after)
	}
	return &ComponentStep{
		name:   name,
		id:     id,
		deps:   deps,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *ComponentStep) ID() compiler.StepID {
	return s.id
}

// DependsOn returns the step dependencies.
func (s *ComponentStep) DependsOn() []compiler.StepID {
	return s.deps
}

// Check looks for the component in rustup's installed-components list.
func (s *ComponentStep) Check(ctx compiler.RunContext) (compiler.StepStatus, error) {
	result, err := s.runner.Run(ctx.Context(), "rustup", "component", "list", "--installed")
	if err != nil {
		return compiler.StatusUnknown, err
	}
	if !result.Success() {
		return compiler.StatusUnknown, fmt.Errorf("rustup component list failed: %s", strings.TrimSpace(result.Stderr))
	}

	// Installed components print with the host triple appended, e.g.
	// "rust-analyzer-x86_64-unknown-linux-gnu".
	for _, line := range strings.Split(result.Stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == s.name || strings.HasPrefix(line, s.name+"-") {
			return compiler.StatusSatisfied, nil
		}
	}
	return compiler.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *ComponentStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.ActionInstall, "component", s.name, ""), nil
}

// Apply installs the component.
func (s *ComponentStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateComponent(s.name); err != nil {
		return fmt.Errorf("invalid component: %w", err)
	}

	result, err := s.runner.Run(ctx.Context(), "rustup", "component", "add", s.name)
	if err != nil {
		return err
	}
	if !result.Success() {
		return &InstallError{Channel: s.name, Command: "rustup component add", Output: result.Stderr}
	}
	return nil
}

// Explain provides a human-readable explanation.
func (s *ComponentStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Install Toolchain Component",
		fmt.Sprintf("Adds the %s component to the active Rust toolchain.", s.name),
		[]string{"https://rust-lang.github.io/rustup/concepts/components.html"},
	)
}
