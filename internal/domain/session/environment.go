// Package session models the mutable shell session assembled by the
// bootstrap. Steps do not mutate process globals directly; they record
// environment variables and aliases here, and the composer decides how
// to materialize the record (os.Setenv, or an eval-able shell snippet).
package session

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

// Environment is the per-run environment mutation record. It is created
// at session start, mutated in place by the currently executing step,
// and discarded when the process exits. Nothing persists across runs.
type Environment struct {
	mu      sync.Mutex
	vars    map[string]string
	order   []string
	aliases map[string]string
}

// NewEnvironment creates an empty Environment.
func NewEnvironment() *Environment {
	return &Environment{
		vars:    make(map[string]string),
		aliases: make(map[string]string),
	}
}

// SetVar records an environment variable mutation. Later writes to the
// same key win, mirroring how sourcing a script twice behaves.
func (e *Environment) SetVar(key, value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, seen := e.vars[key]; !seen {
		e.order = append(e.order, key)
	}
	e.vars[key] = value
}

// Var returns a recorded variable and whether it was set.
func (e *Environment) Var(key string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.vars[key]
	return v, ok
}

// Vars returns a copy of all recorded variables.
func (e *Environment) Vars() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.vars))
	for k, v := range e.vars {
		out[k] = v
	}
	return out
}

// SetAlias records a shell alias definition.
func (e *Environment) SetAlias(name, command string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aliases[name] = command
}

// Alias returns a recorded alias and whether it was set.
func (e *Environment) Alias(name string) (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.aliases[name]
	return v, ok
}

// Aliases returns a copy of all recorded aliases.
func (e *Environment) Aliases() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]string, len(e.aliases))
	for k, v := range e.aliases {
		out[k] = v
	}
	return out
}

// Len returns the number of recorded mutations.
func (e *Environment) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.vars) + len(e.aliases)
}

// Export applies all recorded variables to the current process. Aliases
// cannot cross the process boundary; they are only reachable through
// Render and the shell hook.
func (e *Environment) Export() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, key := range e.order {
		if err := os.Setenv(key, e.vars[key]); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// Render emits a POSIX shell snippet reproducing the record: export
// lines in recorded order, then alias lines sorted by name. The parent
// shell evals this to import the session.
func (e *Environment) Render() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var b strings.Builder
	for _, key := range e.order {
		fmt.Fprintf(&b, "export %s=%s\n", key, shellQuote(e.vars[key]))
	}

	names := make([]string, 0, len(e.aliases))
	for name := range e.aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "alias %s=%s\n", name, shellQuote(e.aliases[name]))
	}
	return b.String()
}

// shellQuote quotes a value for safe eval in a POSIX shell. Values
// that reference other variables (e.g. PATH prepends ending in $PATH)
// keep expansion through double quotes; everything else is
// single-quoted literally.
func shellQuote(s string) string {
	if strings.Contains(s, "$") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
