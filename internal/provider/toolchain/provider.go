package toolchain

import (
	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
)

// Provider implements the compiler.Provider interface for rustup.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new toolchain provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "toolchain"
}

// Compile transforms the toolchain section into steps: one install
// step for the pinned channel, then one step per component, each
// depending on the install.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	rawConfig := ctx.GetSection("toolchain")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	install := NewInstallStep(cfg.Channel, p.runner)
	steps := []compiler.Step{install}

	for _, component := range cfg.Components {
		steps = append(steps, NewComponentStep(component, install.ID(), p.runner))
	}

	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
