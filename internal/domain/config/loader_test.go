package config

import (
	"errors"
	"testing"

	"github.com/espshell/espshell/internal/domain/platform"
	"github.com/espshell/espshell/internal/testutil/mocks"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `
platforms:
  - x86_64-linux
  - aarch64-linux
  - aarch64-darwin
toolchain:
  channel: "1.84.0"
  components:
    - rust-analyzer
espup:
  export_script: ~/export-esp.sh
tools:
  - esp-generate
  - name: espflash
    locked: true
aliases:
  flash: cargo run --release
`

func TestLoader_Load(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/project/espshell.yaml", []byte(sampleManifest))

	manifest, err := NewLoader(fs).Load("/project/espshell.yaml")
	require.NoError(t, err)
	require.Equal(t, "1.84.0", manifest.ToolchainChannel())
	require.Len(t, manifest.Platforms, 3)
	require.True(t, manifest.SupportsPlatform(platform.X8664Linux))
}

func TestLoader_MissingManifest(t *testing.T) {
	fs := mocks.NewFileSystem()

	_, err := NewLoader(fs).Load("/project/espshell.yaml")
	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	require.Contains(t, userErr.Error(), "not found")
}

func TestLoader_InvalidYAML(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/project/espshell.yaml", []byte("toolchain: [unclosed"))

	_, err := NewLoader(fs).Load("/project/espshell.yaml")
	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	require.Contains(t, userErr.Message, "YAML")
}

func TestLoader_PinOverridesChannel(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/project/espshell.yaml", []byte(sampleManifest))
	fs.AddFile("/project/rust-toolchain.toml", []byte(`
[toolchain]
channel = "1.85.1"
components = ["clippy"]
`))

	manifest, err := NewLoader(fs).Load("/project/espshell.yaml")
	require.NoError(t, err)
	require.Equal(t, "1.85.1", manifest.ToolchainChannel())

	// Manifest components survive; pin components merge in.
	components := manifestComponents(manifest)
	require.Equal(t, []string{"rust-analyzer", "clippy"}, components)
}

func TestLoader_InvalidPin(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.AddFile("/project/espshell.yaml", []byte(sampleManifest))
	fs.AddFile("/project/rust-toolchain.toml", []byte("[toolchain]\n"))

	_, err := NewLoader(fs).Load("/project/espshell.yaml")
	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	require.ErrorIs(t, err, ErrNoPinChannel)
}

func TestParseManifest_RequiresToolchain(t *testing.T) {
	_, err := ParseManifest([]byte("aliases:\n  flash: cargo run\n"))
	require.ErrorIs(t, err, ErrNoToolchain)
}

func TestParseManifest_RejectsUnknownPlatform(t *testing.T) {
	data := []byte(`
platforms:
  - x86_64-windows
toolchain:
  channel: "1.84.0"
`)
	_, err := ParseManifest(data)
	require.True(t, errors.Is(err, platform.ErrUnsupportedPlatform))
}

func TestManifest_SupportsPlatform_EmptyListAllowsAll(t *testing.T) {
	manifest, err := ParseManifest([]byte("toolchain:\n  channel: \"1.84.0\"\n"))
	require.NoError(t, err)
	for _, id := range platform.Supported() {
		require.True(t, manifest.SupportsPlatform(id))
	}
}

func TestParseToolchainPin(t *testing.T) {
	pin, err := ParseToolchainPin([]byte(`
[toolchain]
channel = "1.84.0"
components = ["rust-analyzer", "rustfmt"]
`))
	require.NoError(t, err)
	require.Equal(t, "1.84.0", pin.Channel)
	require.Equal(t, []string{"rust-analyzer", "rustfmt"}, pin.Components)
}

func TestParseToolchainPin_BadTOML(t *testing.T) {
	_, err := ParseToolchainPin([]byte("not toml ["))
	require.Error(t, err)
}
