// Package toolchain provides the rustup provider: it pins the Rust
// toolchain version and ensures its components are installed.
package toolchain

import "fmt"

// Config represents the toolchain section of the manifest.
type Config struct {
	Channel    string
	Components []string
}

// ParseConfig parses the toolchain configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{}

	channel, ok := raw["channel"].(string)
	if !ok || channel == "" {
		return nil, fmt.Errorf("toolchain channel must be a non-empty string")
	}
	cfg.Channel = channel

	if components, ok := raw["components"]; ok {
		list, ok := components.([]interface{})
		if !ok {
			return nil, fmt.Errorf("toolchain components must be a list")
		}
		for i, c := range list {
			name, ok := c.(string)
			if !ok {
				return nil, fmt.Errorf("toolchain components[%d] must be a string", i)
			}
			cfg.Components = append(cfg.Components, name)
		}
	}

	return cfg, nil
}
