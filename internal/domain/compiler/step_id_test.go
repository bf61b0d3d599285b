package compiler

import (
	"errors"
	"testing"
)

func TestNewStepID_Valid(t *testing.T) {
	tests := []string{
		"toolchain:install:1.84.0",
		"cargo:tool:esp-generate",
		"espup:source:export-esp.sh",
		"alias:flash",
		"doctor",
	}
	for _, raw := range tests {
		id, err := NewStepID(raw)
		if err != nil {
			t.Errorf("NewStepID(%q) error = %v", raw, err)
		}
		if id.String() != raw {
			t.Errorf("String() = %q, want %q", id.String(), raw)
		}
	}
}

func TestNewStepID_Invalid(t *testing.T) {
	tests := []struct {
		raw  string
		want error
	}{
		{"", ErrEmptyStepID},
		{"   ", ErrEmptyStepID},
		{":leading", ErrInvalidStepID},
		{"trailing:", ErrInvalidStepID},
		{"has space", ErrInvalidStepID},
	}
	for _, tt := range tests {
		_, err := NewStepID(tt.raw)
		if !errors.Is(err, tt.want) {
			t.Errorf("NewStepID(%q) error = %v, want %v", tt.raw, err, tt.want)
		}
	}
}

func TestStepID_Provider(t *testing.T) {
	id := MustNewStepID("cargo:tool:espflash")
	if id.Provider() != "cargo" {
		t.Errorf("Provider() = %q, want %q", id.Provider(), "cargo")
	}
}

func TestStepID_Equals(t *testing.T) {
	a := MustNewStepID("alias:flash")
	b := MustNewStepID("alias:flash")
	c := MustNewStepID("alias:monitor")

	if !a.Equals(b) {
		t.Error("identical IDs should be equal")
	}
	if a.Equals(c) {
		t.Error("different IDs should not be equal")
	}
}

func TestStepID_IsZero(t *testing.T) {
	var zero StepID
	if !zero.IsZero() {
		t.Error("zero value should report IsZero")
	}
	if MustNewStepID("x").IsZero() {
		t.Error("constructed ID should not report IsZero")
	}
}

func TestMustNewStepID_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewStepID should panic on invalid input")
		}
	}()
	MustNewStepID("not valid!")
}
