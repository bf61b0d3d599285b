package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/espshell/espshell/internal/ports"
	"github.com/espshell/espshell/internal/testutil/mocks"
)

func overrideDoctorRunner(runner ports.CommandRunner) func() {
	prev := doctorRunner
	doctorRunner = runner
	return func() { doctorRunner = prev }
}

func TestRunDoctor_AllToolsPresent(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"--version"}, ports.CommandResult{Stdout: "rustup 1.27.1\n"})
	runner.AddResult("cargo", []string{"--version"}, ports.CommandResult{Stdout: "cargo 1.84.0\n"})
	runner.AddResult("espup", []string{"--version"}, ports.CommandResult{Stdout: "espup 0.12.2\n"})
	runner.AddResult("espflash", []string{"--version"}, ports.CommandResult{Stdout: "espflash 3.3.0\n"})

	restore := overrideDoctorRunner(runner)
	defer restore()

	err := runDoctor(&cobra.Command{}, nil)
	require.NoError(t, err)
}

func TestRunDoctor_MissingRequiredTool(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("cargo", []string{"--version"}, ports.CommandResult{Stdout: "cargo 1.84.0\n"})

	restore := overrideDoctorRunner(runner)
	defer restore()

	err := runDoctor(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required tool")
}

func TestRunDoctor_MissingOptionalToolIsFine(t *testing.T) {
	runner := mocks.NewCommandRunner()
	runner.AddResult("rustup", []string{"--version"}, ports.CommandResult{Stdout: "rustup 1.27.1\n"})
	runner.AddResult("cargo", []string{"--version"}, ports.CommandResult{Stdout: "cargo 1.84.0\n"})

	restore := overrideDoctorRunner(runner)
	defer restore()

	err := runDoctor(&cobra.Command{}, nil)
	require.NoError(t, err)
}
