package compiler

import "fmt"

// DiffAction classifies what a step's Apply will do.
type DiffAction string

const (
	// ActionInstall indicates a resource will be installed.
	ActionInstall DiffAction = "install"
	// ActionConfigure indicates session state will be configured.
	ActionConfigure DiffAction = "configure"
	// ActionRun indicates an external tool runs unconditionally; the
	// tool's own idempotence is relied on.
	ActionRun DiffAction = "run"
	// ActionNone indicates no change is needed.
	ActionNone DiffAction = "none"
)

// Diff describes the change a step plans to make.
type Diff struct {
	action   DiffAction
	resource string
	name     string
	detail   string
}

// NewDiff creates a new Diff.
func NewDiff(action DiffAction, resource, name, detail string) Diff {
	return Diff{
		action:   action,
		resource: resource,
		name:     name,
		detail:   detail,
	}
}

// Action returns the planned action.
func (d Diff) Action() DiffAction {
	return d.action
}

// Resource returns the resource kind (e.g. "toolchain", "tool", "alias").
func (d Diff) Resource() string {
	return d.resource
}

// Name returns the resource name.
func (d Diff) Name() string {
	return d.name
}

// Detail returns extra context, such as the version being installed.
func (d Diff) Detail() string {
	return d.detail
}

// Summary returns a one-line human-readable summary.
func (d Diff) Summary() string {
	marker := " "
	switch d.action {
	case ActionInstall:
		marker = "+"
	case ActionConfigure:
		marker = "~"
	case ActionRun:
		marker = ">"
	case ActionNone:
		marker = " "
	}
	if d.detail != "" {
		return fmt.Sprintf("%s %s %s (%s)", marker, d.resource, d.name, d.detail)
	}
	return fmt.Sprintf("%s %s %s", marker, d.resource, d.name)
}

// IsEmpty returns true if this diff represents no planned change.
func (d Diff) IsEmpty() bool {
	return (d.action == ActionNone || d.action == "") && d.resource == "" && d.name == ""
}
