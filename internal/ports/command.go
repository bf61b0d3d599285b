// Package ports defines the interfaces through which the domain reaches
// external collaborators (processes, filesystem, logging).
package ports

import (
	"context"
	"strings"
)

// CommandResult is the observable outcome of a finished external command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success returns true if the command exited with code 0.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandCall records a single command invocation for trace assertions.
type CommandCall struct {
	Command string
	Args    []string
}

// String renders the call the way it would appear on a shell line.
func (c CommandCall) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// CommandRunner executes external commands synchronously. Installers are
// trusted to terminate on their own; cancellation comes from ctx only.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (CommandResult, error)
}
