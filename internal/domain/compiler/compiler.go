// Package compiler transforms the environment manifest into executable
// bootstrap steps: Config → Provider → StepGraph.
package compiler

import "fmt"

// Compiler orchestrates providers to build a StepGraph from configuration.
type Compiler struct {
	providers []Provider
}

// NewCompiler creates a new Compiler.
func NewCompiler() *Compiler {
	return &Compiler{
		providers: make([]Provider, 0),
	}
}

// RegisterProvider adds a provider. Providers compile in registration
// order, which fixes the relative order of their steps.
func (c *Compiler) RegisterProvider(provider Provider) {
	c.providers = append(c.providers, provider)
}

// Providers returns all registered providers.
func (c *Compiler) Providers() []Provider {
	return c.providers
}

// Compile transforms configuration into a validated StepGraph.
func (c *Compiler) Compile(ctx CompileContext) (*StepGraph, error) {
	graph := NewStepGraph()

	for _, provider := range c.providers {
		steps, err := provider.Compile(ctx)
		if err != nil {
			return nil, fmt.Errorf("provider %q: %w", provider.Name(), err)
		}
		for _, step := range steps {
			if err := graph.Add(step); err != nil {
				return nil, fmt.Errorf("provider %q, step %q: %w",
					provider.Name(), step.ID().String(), err)
			}
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, err
	}
	if _, err := graph.TopologicalSort(); err != nil {
		return nil, err
	}

	return graph, nil
}
