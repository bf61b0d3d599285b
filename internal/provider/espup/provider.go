package espup

import (
	"github.com/espshell/espshell/internal/domain/compiler"
	"github.com/espshell/espshell/internal/ports"
)

// Provider implements the compiler.Provider interface for espup.
type Provider struct {
	runner ports.CommandRunner
	fs     ports.FileSystem
}

// NewProvider creates a new espup provider.
func NewProvider(runner ports.CommandRunner, fs ports.FileSystem) *Provider {
	return &Provider{runner: runner, fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "espup"
}

// Compile transforms the espup section into two steps: sourcing the
// export script, then running the installer.
func (p *Provider) Compile(ctx compiler.CompileContext) ([]compiler.Step, error) {
	rawConfig := ctx.GetSection("espup")
	if rawConfig == nil {
		return nil, nil
	}

	cfg, err := ParseConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	return []compiler.Step{
		NewExportStep(cfg.ExportScript, p.fs),
		NewInstallStep(cfg.Targets, p.runner),
	}, nil
}

// Ensure Provider implements compiler.Provider.
var _ compiler.Provider = (*Provider)(nil)
