package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/espshell/espshell/internal/ports"
)

// PinFileName is the toolchain pin rustup itself honors.
const PinFileName = "rust-toolchain.toml"

// Loader loads the environment manifest from the filesystem.
type Loader struct {
	fs ports.FileSystem
}

// NewLoader creates a Loader over the given filesystem.
func NewLoader(fs ports.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and validates the manifest at path. When a
// rust-toolchain.toml sits next to the manifest, its channel overrides
// the manifest's and its components are merged in, so the provisioned
// shell matches what cargo will use.
func (l *Loader) Load(path string) (*Manifest, error) {
	path = ports.ExpandPath(path)
	if !l.fs.Exists(path) {
		return nil, NewConfigNotFoundError(path)
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, err
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		if strings.Contains(err.Error(), "yaml:") || strings.Contains(err.Error(), "unmarshal") {
			return nil, NewYAMLParseError(path, err)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	pinPath := filepath.Join(filepath.Dir(path), PinFileName)
	if l.fs.Exists(pinPath) {
		if err := l.applyPin(manifest, pinPath); err != nil {
			return nil, err
		}
	}

	return manifest, nil
}

func (l *Loader) applyPin(manifest *Manifest, pinPath string) error {
	data, err := l.fs.ReadFile(pinPath)
	if err != nil {
		return err
	}

	pin, err := ParseToolchainPin(data)
	if err != nil {
		return NewTOMLParseError(pinPath, err)
	}

	manifest.SetToolchain(pin.Channel, mergeComponents(manifestComponents(manifest), pin.Components))
	return nil
}

func manifestComponents(m *Manifest) []string {
	section, ok := m.raw["toolchain"].(map[string]interface{})
	if !ok {
		return nil
	}
	rawList, ok := section["components"].([]interface{})
	if !ok {
		return nil
	}
	components := make([]string, 0, len(rawList))
	for _, c := range rawList {
		if s, ok := c.(string); ok {
			components = append(components, s)
		}
	}
	return components
}

func mergeComponents(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, c := range append(append([]string{}, base...), extra...) {
		if !seen[c] {
			seen[c] = true
			merged = append(merged, c)
		}
	}
	return merged
}
