package config

import (
	"errors"

	toml "github.com/pelletier/go-toml/v2"
)

// ToolchainPin is the relevant subset of a rust-toolchain.toml file.
// When present next to the manifest, it wins over the manifest's own
// toolchain section, so the dev shell and cargo agree on the pin.
type ToolchainPin struct {
	Channel    string
	Components []string
}

// ErrNoPinChannel indicates the pin file lacks a channel.
var ErrNoPinChannel = errors.New("rust-toolchain.toml has no toolchain.channel")

type toolchainPinTOML struct {
	Toolchain struct {
		Channel    string   `toml:"channel"`
		Components []string `toml:"components"`
	} `toml:"toolchain"`
}

// ParseToolchainPin parses a rust-toolchain.toml document.
func ParseToolchainPin(data []byte) (*ToolchainPin, error) {
	var raw toolchainPinTOML
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Toolchain.Channel == "" {
		return nil, ErrNoPinChannel
	}
	return &ToolchainPin{
		Channel:    raw.Toolchain.Channel,
		Components: raw.Toolchain.Components,
	}, nil
}
