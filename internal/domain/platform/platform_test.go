package platform

import (
	"errors"
	"testing"
)

func TestResolve_Supported(t *testing.T) {
	for _, id := range Supported() {
		source, err := Resolve(id)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", id, err)
		}
		if source.IsZero() {
			t.Errorf("Resolve(%s) returned an empty source", id)
		}
		if source.Platform() != id {
			t.Errorf("Resolve(%s).Platform() = %s", id, source.Platform())
		}
		if source.Triple() == "" {
			t.Errorf("Resolve(%s) triple is empty", id)
		}
	}
}

func TestResolve_Unsupported(t *testing.T) {
	tests := []string{"x86_64-windows", "riscv64-linux", "", "x86_64-linux-musl"}
	for _, raw := range tests {
		_, err := Resolve(ID(raw))
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnsupportedPlatform", raw, err)
		}
	}
}

func TestResolve_Triples(t *testing.T) {
	tests := []struct {
		id     ID
		triple string
	}{
		{X8664Linux, "x86_64-unknown-linux-gnu"},
		{Aarch64Linux, "aarch64-unknown-linux-gnu"},
		{Aarch64Darwin, "aarch64-apple-darwin"},
	}
	for _, tt := range tests {
		source, err := Resolve(tt.id)
		if err != nil {
			t.Fatalf("Resolve(%s) error = %v", tt.id, err)
		}
		if source.Triple() != tt.triple {
			t.Errorf("Resolve(%s).Triple() = %s, want %s", tt.id, source.Triple(), tt.triple)
		}
	}
}

func TestDetect_KnownHosts(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         ID
	}{
		{"linux", "amd64", X8664Linux},
		{"linux", "arm64", Aarch64Linux},
		{"darwin", "arm64", Aarch64Darwin},
	}
	for _, tt := range tests {
		got, err := detect(tt.goos, tt.goarch)
		if err != nil {
			t.Fatalf("detect(%s, %s) error = %v", tt.goos, tt.goarch, err)
		}
		if got != tt.want {
			t.Errorf("detect(%s, %s) = %s, want %s", tt.goos, tt.goarch, got, tt.want)
		}
	}
}

func TestDetect_UnknownHosts(t *testing.T) {
	tests := []struct{ goos, goarch string }{
		{"windows", "amd64"},
		{"darwin", "amd64"},
		{"linux", "riscv64"},
	}
	for _, tt := range tests {
		_, err := detect(tt.goos, tt.goarch)
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("detect(%s, %s) error = %v, want ErrUnsupportedPlatform", tt.goos, tt.goarch, err)
		}
	}
}
