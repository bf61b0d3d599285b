// Package cargo provides the cargo tools provider: it installs
// project tooling crates through `cargo install`.
package cargo

import "fmt"

// Tool describes one crate to install.
type Tool struct {
	Name   string
	Locked bool
}

// Config represents the tools section of the manifest.
type Config struct {
	Tools []Tool
}

// ParseConfig parses the tools configuration from a raw map. Each
// entry is either a crate name or a map with name and locked keys.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{}

	list, ok := raw["install"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("tools install must be a list")
	}

	for i, entry := range list {
		switch v := entry.(type) {
		case string:
			cfg.Tools = append(cfg.Tools, Tool{Name: v})
		case map[string]interface{}:
			name, ok := v["name"].(string)
			if !ok || name == "" {
				return nil, fmt.Errorf("tools install[%d] name must be a non-empty string", i)
			}
			tool := Tool{Name: name}
			if locked, ok := v["locked"]; ok {
				flag, ok := locked.(bool)
				if !ok {
					return nil, fmt.Errorf("tools install[%d] locked must be a boolean", i)
				}
				tool.Locked = flag
			}
			cfg.Tools = append(cfg.Tools, tool)
		default:
			return nil, fmt.Errorf("tools install[%d] must be a string or a map", i)
		}
	}

	return cfg, nil
}
