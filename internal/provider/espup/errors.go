package espup

import "fmt"

// ExternalToolError reports a failure while sourcing the exported
// environment script or while running the espup installer itself.
type ExternalToolError struct {
	Stage  string
	Path   string
	Output string
	Err    error
}

func (e *ExternalToolError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("espup %s failed for %s: %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("espup %s failed: %v", e.Stage, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}
