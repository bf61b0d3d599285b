// Package command provides command execution adapters.
package command

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"

	"github.com/espshell/espshell/internal/ports"
)

// RealRunner executes actual shell commands, capturing their output.
type RealRunner struct {
	// tee destinations for live progress; nil means capture only
	stdout io.Writer
	stderr io.Writer
}

// NewRealRunner creates a RealRunner that captures output silently.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// NewStreamingRunner creates a RealRunner that mirrors command output to
// the given writers while still capturing it. Third-party installers
// narrate their own progress, so the bootstrap console sees it live.
func NewStreamingRunner(stdout, stderr io.Writer) *RealRunner {
	return &RealRunner{stdout: stdout, stderr: stderr}
}

// Run executes a command and returns the result. A non-zero exit is not
// an error; it is reported through CommandResult.ExitCode.
func (r *RealRunner) Run(ctx context.Context, command string, args ...string) (ports.CommandResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdout, stderr strings.Builder
	if r.stdout != nil {
		cmd.Stdout = io.MultiWriter(&stdout, r.stdout)
	} else {
		cmd.Stdout = &stdout
	}
	if r.stderr != nil {
		cmd.Stderr = io.MultiWriter(&stderr, r.stderr)
	} else {
		cmd.Stderr = &stderr
	}

	err := cmd.Run()

	result := ports.CommandResult{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	return errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound)
}

// Ensure RealRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*RealRunner)(nil)
