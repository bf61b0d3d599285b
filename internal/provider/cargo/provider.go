package cargo

import (
	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
)

// Provider implements the compiler.Provider interface for cargo tools.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new cargo tools provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "tools"
}

// Compile transforms the tools section into one install step per crate,
// in manifest order.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	rawConfig := ctx.GetSection("tools")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	steps := make([]compiler.Step, 0, len(cfg.Tools))
	for _, tool := range cfg.Tools {
		steps = append(steps, NewToolStep(tool, p.runner))
	}
	return steps, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
