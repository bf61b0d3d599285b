package toolchain

import (
	"context"
	"errors"
	"testing"

	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/testutil/mocks"
	"github.com/stretchr/testify/require"
)

func runCtx() compiler.RunContext {
	return compiler.NewRunContext(context.Background())
}

func TestInstallStep_Check_ActiveMatches(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"show", "active-toolchain"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "1.84.0-x86_64-unknown-linux-gnu (default)\n",
	})

	step := NewInstallStep("1.84.0", runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusSatisfied, status)
}

func TestInstallStep_Check_ActiveDiffers(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"show", "active-toolchain"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "1.82.0-x86_64-unknown-linux-gnu (default)\n",
	})

	step := NewInstallStep("1.84.0", runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusNeedsApply, status)
}

func TestInstallStep_Check_NoDefaultToolchain(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"show", "active-toolchain"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "error: no active toolchain\n",
	})

	step := NewInstallStep("1.84.0", runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusNeedsApply, status)
}

func TestInstallStep_Check_NamedChannel(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"show", "active-toolchain"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "stable-aarch64-apple-darwin (default)\n",
	})

	step := NewInstallStep("stable", runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusSatisfied, status)
}

func TestInstallStep_Apply_InstallsAndSetsDefault(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"toolchain", "install", "1.84.0"}, ports.CommandResult{ExitCode: 0})
	runner.AddResult("rustup", []string{"default", "1.84.0"}, ports.CommandResult{ExitCode: 0})

	step := NewInstallStep("1.84.0", runner)
	require.NoError(t, step.Apply(runCtx()))

	require.Equal(t, []string{
		"rustup toolchain install 1.84.0",
		"rustup default 1.84.0",
	}, runner.CallLines())
}

func TestInstallStep_Apply_InstallFailure(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"toolchain", "install", "1.84.0"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "error: could not download component\n",
	})

	step := NewInstallStep("1.84.0", runner)
	err := step.Apply(runCtx())

	var installErr *InstallError
	require.ErrorAs(t, err, &installErr)
	require.Equal(t, "1.84.0", installErr.Channel)
	require.Contains(t, installErr.Error(), "could not download")
}

func TestInstallStep_Apply_RejectsInvalidChannel(t *testing.T) {
	runner := mocks.NewCommandRunner()
	step := NewInstallStep("1.84.0_invalid", runner)

	err := step.Apply(runCtx())
	require.Error(t, err)
	require.Empty(t, runner.Calls(), "no command may run with an invalid channel")
}

func TestComponentStep_Check_Installed(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"component", "list", "--installed"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "cargo-x86_64-unknown-linux-gnu\nrust-analyzer-x86_64-unknown-linux-gnu\n",
	})

	step := NewComponentStep("rust-analyzer", compiler.StepID{}, runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusSatisfied, status)
}

func TestComponentStep_Check_Missing(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"component", "list", "--installed"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "cargo-x86_64-unknown-linux-gnu\nrustfmt-x86_64-unknown-linux-gnu\n",
	})

	step := NewComponentStep("rust-analyzer", compiler.StepID{}, runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusNeedsApply, status)
}

func TestComponentStep_Check_DoesNotMatchPrefixComponent(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"component", "list", "--installed"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "rust-analyzer-x86_64-unknown-linux-gnu\n",
	})

	// "rust" must not match "rust-analyzer-..." by accident: the
	// separator after the name is the host-triple dash, so prefix
	// matching with the trailing dash is intended behavior here.
	step := NewComponentStep("rust-analyzer", compiler.StepID{}, runner)
	status, err := step.Check(runCtx())
	require.NoError(t, err)
	require.Equal(t, compiler.StatusSatisfied, status)
}

func TestComponentStep_Apply(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"component", "add", "rust-analyzer"}, ports.CommandResult{ExitCode: 0})

	step := NewComponentStep("rust-analyzer", compiler.StepID{}, runner)
	require.NoError(t, step.Apply(runCtx()))
}

func TestComponentStep_Apply_Failure(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"component", "add", "rust-analyzer"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "error: unknown component\n",
	})

	step := NewComponentStep("rust-analyzer", compiler.StepID{}, runner)
	var installErr *InstallError
	require.ErrorAs(t, step.Apply(runCtx()), &installErr)
}

func TestComponentStep_DependsOnInstall(t *testing.T) {
	runner := mocks.NewCommandRunner()
	install := NewInstallStep("1.84.0", runner)
	step := NewComponentStep("rust-analyzer", install.ID(), runner)

	deps := step.DependsOn()
	require.Len(t, deps, 1)
	require.True(t, deps[0].Equals(install.ID()))
}

func TestInstallStep_Check_RunnerError(t *testing.T) {
	runner := mocks.NewCommandRunner()
	wantErr := errors.New("rustup not found")
	runner.AddError("rustup", []string{"show", "active-toolchain"}, wantErr)

	step := NewInstallStep("1.84.0", runner)
	status, err := step.Check(runCtx())
	require.ErrorIs(t, err, wantErr)
	require.Equal(t, compiler.StatusUnknown, status)
}
