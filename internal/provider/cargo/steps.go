package cargo

import (
	"fmt"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/validation"
)

// ToolInstallError reports a failed `cargo install` for one crate.
type ToolInstallError struct {
	Crate  string
	Output string
	Err    error
}

func (e *ToolInstallError) Error() string {
	return fmt.Sprintf("cargo install %s failed: %v", e.Crate, e.Err)
}

func (e *ToolInstallError) Unwrap() error {
	return e.Err
}

// ToolStep installs one tooling crate with `cargo install`. It does
// not pre-check the installed state: cargo skips crates that are
// already installed at the requested version, so the step defers to
// the package manager's own idempotence.
type ToolStep struct {
	tool   Tool
	runner ports.CommandRunner
}

func NewToolStep(tool Tool, runner ports.CommandRunner) *ToolStep {
	return &ToolStep{tool: tool, runner: runner}
}

func (s *ToolStep) ID() compiler.StepID {
	return compiler.MustNewStepID(fmt.Sprintf("cargo:tool:%s", s.tool.Name))
}

func (s *ToolStep) DependsOn() []compiler.StepID {
	return nil
}

func (s *ToolStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

func (s *ToolStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	detail := fmt.Sprintf("cargo install %s", s.tool.Name)
	if s.tool.Locked {
		detail += " --locked"
	}
	return compiler.NewDiff(compiler.ActionInstall, "crate", s.tool.Name, detail), nil
}

func (s *ToolStep) Apply(ctx compiler.RunContext) error {
	if err := validation.ValidateCargoCrate(s.tool.Name); err != nil {
		return &ToolInstallError{Crate: s.tool.Name, Err: err}
	}

	args := []string{"install", s.tool.Name}
	if s.tool.Locked {
		args = append(args, "--locked")
	}

	result, err := s.runner.Run(ctx.Context(), "cargo", args...)
	if err != nil {
		return &ToolInstallError{Crate: s.tool.Name, Err: err}
	}
	if !result.Success() {
		return &ToolInstallError{
			Crate:  s.tool.Name,
			Output: result.Stderr,
			Err:    fmt.Errorf("cargo exited with code %d", result.ExitCode),
		}
	}
	return nil
}

func (s *ToolStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		fmt.Sprintf("Install the %s crate", s.tool.Name),
		fmt.Sprintf("Builds and installs %s into the cargo bin directory. "+
			"cargo skips the build when the requested version is already present.", s.tool.Name),
		[]string{"https://doc.rust-lang.org/cargo/commands/cargo-install.html"},
	)
}
