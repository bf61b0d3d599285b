// Package validation checks manifest-supplied strings before they reach
// an external command's argv, to prevent command injection through a
// crafted environment descriptor.
package validation

import (
	"errors"
	"regexp"
)

// Common validation errors.
var (
	ErrEmptyInput          = errors.New("input cannot be empty")
	ErrInvalidChannel      = errors.New("invalid toolchain channel")
	ErrInvalidComponent    = errors.New("invalid component name")
	ErrInvalidCargoCrate   = errors.New("invalid cargo crate name")
	ErrInvalidAliasName    = errors.New("invalid alias name")
	ErrInvalidEspupTargets = errors.New("invalid espup target list")
)

var (
	// channelRegex matches rustup channels: "stable", "nightly-2024-06-01",
	// or explicit versions like "1.84.0".
	channelRegex = regexp.MustCompile(`^[a-z0-9][a-zA-Z0-9.-]*$`)

	// componentRegex matches rustup component names: "rust-analyzer",
	// "clippy", "rust-src".
	componentRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

	// crateRegex matches cargo crate names: "espflash", "esp-generate".
	crateRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]*$`)

	// aliasRegex matches shell alias names.
	aliasRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

	// targetsRegex matches espup's comma-separated chip list: "esp32c3"
	// or "esp32,esp32s3".
	targetsRegex = regexp.MustCompile(`^[a-z0-9]+(,[a-z0-9]+)*$`)
)

// ValidateChannel validates a rustup toolchain channel string.
func ValidateChannel(channel string) error {
	if channel == "" {
		return ErrEmptyInput
	}
	if !channelRegex.MatchString(channel) {
		return ErrInvalidChannel
	}
	return nil
}

// ValidateComponent validates a rustup component name.
func ValidateComponent(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !componentRegex.MatchString(name) {
		return ErrInvalidComponent
	}
	return nil
}

// ValidateCargoCrate validates a cargo crate name.
func ValidateCargoCrate(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !crateRegex.MatchString(name) {
		return ErrInvalidCargoCrate
	}
	return nil
}

// ValidateAliasName validates a shell alias name.
func ValidateAliasName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}
	if !aliasRegex.MatchString(name) {
		return ErrInvalidAliasName
	}
	return nil
}

// ValidateEspupTargets validates espup's comma-separated chip targets.
func ValidateEspupTargets(targets string) error {
	if targets == "" {
		return ErrEmptyInput
	}
	if !targetsRegex.MatchString(targets) {
		return ErrInvalidEspupTargets
	}
	return nil
}
