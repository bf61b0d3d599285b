package espup

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/validation"
)

var exportLineRegex = regexp.MustCompile(`^\s*export\s+([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)

// ExportStep sources the environment script written by a previous espup
// run into the current session. Session environments never persist
// between runs, so the step always needs to apply.
type ExportStep struct {
	scriptPath string
	fs         ports.FileSystem
}

func NewExportStep(scriptPath string, fs ports.FileSystem) *ExportStep {
	return &ExportStep{scriptPath: scriptPath, fs: fs}
}

func (s *ExportStep) ID() compiler.StepID {
	return compiler.MustNewStepID("espup:export")
}

func (s *ExportStep) DependsOn() []compiler.StepID {
	return nil
}

func (s *ExportStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

func (s *ExportStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	return compiler.NewDiff(compiler.ActionConfigure, "environment", s.scriptPath,
		"source exported variables into the session"), nil
}

func (s *ExportStep) Apply(ctx compiler.RunContext) error {
	path := ports.ExpandPath(s.scriptPath)
	if !s.fs.Exists(path) {
		return &ExternalToolError{
			Stage: "export",
			Path:  s.scriptPath,
			Err:   fmt.Errorf("environment script not found"),
		}
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return &ExternalToolError{Stage: "export", Path: s.scriptPath, Err: err}
	}

	for _, line := range strings.Split(string(data), "\n") {
		m := exportLineRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		ctx.Session().SetVar(m[1], unquote(strings.TrimSpace(m[2])))
	}
	return nil
}

func (s *ExportStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		fmt.Sprintf("Source %s into the session environment", s.scriptPath),
		"The espup installer writes the compiler paths and library flags it "+
			"configured into an export script. Sourcing it makes the Xtensa "+
			"and RISC-V toolchains visible to cargo for the rest of the session.",
		[]string{"https://github.com/esp-rs/espup"},
	)
}

func unquote(v string) string {
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}

// InstallStep runs the espup installer for the Espressif Rust toolchains.
// espup manages its own install state, so the step re-runs on every
// bootstrap and relies on the installer's idempotence.
type InstallStep struct {
	targets string
	runner  ports.CommandRunner
}

func NewInstallStep(targets string, runner ports.CommandRunner) *InstallStep {
	return &InstallStep{targets: targets, runner: runner}
}

func (s *InstallStep) ID() compiler.StepID {
	return compiler.MustNewStepID("espup:install")
}

func (s *InstallStep) DependsOn() []compiler.StepID {
	return []compiler.StepID{compiler.MustNewStepID("espup:export")}
}

func (s *InstallStep) Check(_ compiler.RunContext) (compiler.StepStatus, error) {
	return compiler.StatusNeedsApply, nil
}

func (s *InstallStep) Plan(_ compiler.RunContext) (compiler.Diff, error) {
	detail := "run the espup installer"
	if s.targets != "" {
		detail = fmt.Sprintf("run the espup installer for targets %s", s.targets)
	}
	return compiler.NewDiff(compiler.ActionRun, "installer", "espup", detail), nil
}

func (s *InstallStep) Apply(ctx compiler.RunContext) error {
	args := []string{"install"}
	if s.targets != "" {
		if err := validation.ValidateEspupTargets(s.targets); err != nil {
			return &ExternalToolError{Stage: "install", Err: err}
		}
		args = append(args, "--targets", s.targets)
	}

	result, err := s.runner.Run(ctx.Context(), "espup", args...)
	if err != nil {
		return &ExternalToolError{Stage: "install", Err: err}
	}
	if !result.Success() {
		return &ExternalToolError{
			Stage:  "install",
			Output: result.Stderr,
			Err:    fmt.Errorf("installer exited with code %d", result.ExitCode),
		}
	}
	return nil
}

func (s *InstallStep) Explain(_ compiler.ExplainContext) compiler.Explanation {
	return compiler.NewExplanation(
		"Install the Espressif Rust toolchains with espup",
		"espup downloads and configures the forked Xtensa rustc and the "+
			"matching GCC toolchains. Progress streams directly to the console.",
		[]string{"https://github.com/esp-rs/espup"},
	)
}
