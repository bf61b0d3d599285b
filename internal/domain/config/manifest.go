// Package config loads and validates the declarative environment
// manifest (espshell.yaml) and the optional rust-toolchain.toml pin.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/espshell/espshell/internal/domain/platform"
)

// Errors for manifest validation.
var (
	ErrNoToolchain = errors.New("manifest must define a toolchain channel")
)

// Manifest is the parsed environment descriptor. Providers read their
// own sections out of the raw map; the manifest itself only validates
// the cross-cutting parts (platform set, toolchain presence).
type Manifest struct {
	Platforms []platform.ID
	raw       map[string]interface{}
}

// Raw returns the full configuration map for provider compilation.
func (m *Manifest) Raw() map[string]interface{} {
	return m.raw
}

// SupportsPlatform reports whether the manifest allows the platform.
// An empty platforms list means every supported platform is allowed.
func (m *Manifest) SupportsPlatform(id platform.ID) bool {
	if len(m.Platforms) == 0 {
		return true
	}
	for _, p := range m.Platforms {
		if p == id {
			return true
		}
	}
	return false
}

// ToolchainChannel returns the pinned toolchain channel, or "".
func (m *Manifest) ToolchainChannel() string {
	section, ok := m.raw["toolchain"].(map[string]interface{})
	if !ok {
		return ""
	}
	channel, _ := section["channel"].(string)
	return channel
}

// SetToolchain replaces the toolchain section, used when a
// rust-toolchain.toml pin overrides the manifest.
func (m *Manifest) SetToolchain(channel string, components []string) {
	comps := make([]interface{}, 0, len(components))
	for _, c := range components {
		comps = append(comps, c)
	}
	m.raw["toolchain"] = map[string]interface{}{
		"channel":    channel,
		"components": comps,
	}
}

// ParseManifest parses and validates a manifest from YAML bytes.
func ParseManifest(data []byte) (*Manifest, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = make(map[string]interface{})
	}

	m := &Manifest{raw: raw}

	if platforms, ok := raw["platforms"].([]interface{}); ok {
		for i, p := range platforms {
			s, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("platforms[%d] must be a string", i)
			}
			id := platform.ID(s)
			if _, err := platform.Resolve(id); err != nil {
				return nil, err
			}
			m.Platforms = append(m.Platforms, id)
		}
	}

	if m.ToolchainChannel() == "" {
		return nil, ErrNoToolchain
	}

	return m, nil
}
