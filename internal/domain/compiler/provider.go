package compiler

import "github.com/espshell/espshell/internal/domain/platform"

// Provider compiles one section of the manifest into executable steps.
// Each provider handles one external collaborator (rustup, espup,
// cargo, the shell).
type Provider interface {
	// Name returns the provider's identifier (e.g. "toolchain", "cargo").
	Name() string

	// Compile transforms configuration into an ordered list of steps.
	Compile(ctx CompileContext) ([]Step, error)
}

// CompileContext provides configuration and the resolved platform source
// to providers during compilation.
type CompileContext struct {
	config map[string]interface{}
	source platform.Source
}

// NewCompileContext creates a CompileContext over the merged config.
func NewCompileContext(config map[string]interface{}) CompileContext {
	return CompileContext{config: config}
}

// Config returns the full configuration map.
func (c CompileContext) Config() map[string]interface{} {
	return c.config
}

// GetSection returns a named section of the configuration, or nil if the
// section is absent or not a map.
func (c CompileContext) GetSection(key string) map[string]interface{} {
	if c.config == nil {
		return nil
	}
	section, ok := c.config[key]
	if !ok {
		return nil
	}
	sectionMap, ok := section.(map[string]interface{})
	if !ok {
		return nil
	}
	return sectionMap
}

// Source returns the resolved package source for the target platform.
func (c CompileContext) Source() platform.Source {
	return c.source
}

// WithSource returns a CompileContext with the platform source set.
func (c CompileContext) WithSource(source platform.Source) CompileContext {
	c.source = source
	return c
}
