// Package alias provides the shell alias provider: it records command
// aliases in the session environment for the composed shell snippet.
package alias

import (
	"fmt"
	"sort"

	"github.com/espshell/espshell/internal/domain/compiler"
)

// Provider implements the compiler.Provider interface for aliases.
type Provider struct{}

// NewProvider creates a new alias provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "aliases"
}

// Compile transforms the aliases section into one step per alias,
// sorted by name for a deterministic plan.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	rawConfig := ctx.GetSection("aliases")
	if rawConfig == nil {
		return nil, nil
	}

	names := make([]string, 0, len(rawConfig))
	for name := range rawConfig {
		names = append(names, name)
	}
	sort.Strings(names)

	steps := make([]compiler.Step, 0, len(names))
	for _, name := range names {
		command, ok := rawConfig[name].(string)
		if !ok || command == "" {
			return nil, fmt.Errorf("alias %s must map to a non-empty command string", name)
		}
		steps = append(steps, NewAliasStep(name, command))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
