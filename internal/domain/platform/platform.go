// Package platform resolves the host against the fixed set of platforms
// the bootstrap supports.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ID identifies a supported architecture/OS pair. The set is closed:
// the bootstrap is only exercised on systems the toolchain vendors
// publish binaries for.
type ID string

const (
	// X8664Linux is 64-bit Intel/AMD Linux.
	X8664Linux ID = "x86_64-linux"
	// Aarch64Linux is 64-bit ARM Linux.
	Aarch64Linux ID = "aarch64-linux"
	// Aarch64Darwin is Apple Silicon macOS.
	Aarch64Darwin ID = "aarch64-darwin"
)

// ErrUnsupportedPlatform indicates the identifier is outside the
// supported set.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// supported maps each platform ID to its resolved source.
var supported = map[ID]Source{
	X8664Linux:    {id: X8664Linux, triple: "x86_64-unknown-linux-gnu"},
	Aarch64Linux:  {id: Aarch64Linux, triple: "aarch64-unknown-linux-gnu"},
	Aarch64Darwin: {id: Aarch64Darwin, triple: "aarch64-apple-darwin"},
}

// Source is the concrete package source resolved for a platform: the
// rustup host triple the toolchain manager installs against.
type Source struct {
	id     ID
	triple string
}

// Platform returns the platform this source was resolved for.
func (s Source) Platform() ID {
	return s.id
}

// Triple returns the rustup host triple.
func (s Source) Triple() string {
	return s.triple
}

// String returns a human-readable description.
func (s Source) String() string {
	return fmt.Sprintf("%s (%s)", s.id, s.triple)
}

// IsZero reports whether this is an unresolved source.
func (s Source) IsZero() bool {
	return s.id == "" && s.triple == ""
}

// String returns the identifier string.
func (id ID) String() string {
	return string(id)
}

// Supported returns all supported platform IDs in stable order.
func Supported() []ID {
	return []ID{X8664Linux, Aarch64Linux, Aarch64Darwin}
}

// Resolve validates an identifier and returns its package source.
func Resolve(id ID) (Source, error) {
	source, ok := supported[id]
	if !ok {
		return Source{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, string(id))
	}
	return source, nil
}

// Detect maps the host OS and architecture to a platform ID. Hosts
// outside the supported set fail with ErrUnsupportedPlatform.
func Detect() (ID, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (ID, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return X8664Linux, nil
	case goos == "linux" && goarch == "arm64":
		return Aarch64Linux, nil
	case goos == "darwin" && goarch == "arm64":
		return Aarch64Darwin, nil
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedPlatform, goos, goarch)
	}
}
