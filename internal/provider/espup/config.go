// Package espup provides the Espressif bootstrap provider: it sources
// the environment script from a previous espup run and then invokes
// the espup installer for the ESP Rust toolchains.
package espup

import "fmt"

// DefaultExportScript is where espup writes its environment exports.
const DefaultExportScript = "~/export-esp.sh"

// Config represents the espup section of the manifest.
type Config struct {
	ExportScript string
	Targets      string
}

// ParseConfig parses the espup configuration from a raw map.
func ParseConfig(raw map[string]interface{}) (*Config, error) {
	cfg := &Config{ExportScript: DefaultExportScript}

	if script, ok := raw["export_script"]; ok {
		path, ok := script.(string)
		if !ok || path == "" {
			return nil, fmt.Errorf("espup export_script must be a non-empty string")
		}
		cfg.ExportScript = path
	}

	if targets, ok := raw["targets"]; ok {
		value, ok := targets.(string)
		if !ok {
			return nil, fmt.Errorf("espup targets must be a string")
		}
		cfg.Targets = value
	}

	return cfg, nil
}
