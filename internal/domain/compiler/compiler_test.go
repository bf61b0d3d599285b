package compiler

import (
	"errors"
	"testing"

	"github.com/espshell/espshell/internal/domain/platform"
)

// fakeProvider emits a fixed list of steps.
type fakeProvider struct {
	name  string
	steps []Step
	err   error
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Compile(CompileContext) ([]Step, error) {
	return p.steps, p.err
}

func TestCompiler_CompileAggregatesProviders(t *testing.T) {
	c := NewCompiler()
	c.RegisterProvider(&fakeProvider{name: "toolchain", steps: []Step{newFakeStep("toolchain:install")}})
	c.RegisterProvider(&fakeProvider{name: "cargo", steps: []Step{newFakeStep("cargo:tool:espflash")}})

	graph, err := c.Compile(NewCompileContext(nil))
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if graph.Len() != 2 {
		t.Errorf("graph.Len() = %d, want 2", graph.Len())
	}
}

func TestCompiler_CompileProviderError(t *testing.T) {
	wantErr := errors.New("bad section")
	c := NewCompiler()
	c.RegisterProvider(&fakeProvider{name: "espup", err: wantErr})

	_, err := c.Compile(NewCompileContext(nil))
	if !errors.Is(err, wantErr) {
		t.Errorf("Compile() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestCompiler_CompileRejectsDuplicateIDs(t *testing.T) {
	c := NewCompiler()
	c.RegisterProvider(&fakeProvider{name: "a", steps: []Step{newFakeStep("dup")}})
	c.RegisterProvider(&fakeProvider{name: "b", steps: []Step{newFakeStep("dup")}})

	_, err := c.Compile(NewCompileContext(nil))
	if !errors.Is(err, ErrDuplicateStep) {
		t.Errorf("Compile() error = %v, want ErrDuplicateStep", err)
	}
}

func TestCompileContext_GetSection(t *testing.T) {
	ctx := NewCompileContext(map[string]interface{}{
		"cargo":  map[string]interface{}{"tools": []interface{}{"espflash"}},
		"scalar": 42,
	})

	if ctx.GetSection("cargo") == nil {
		t.Error("GetSection(cargo) should return the section")
	}
	if ctx.GetSection("missing") != nil {
		t.Error("GetSection(missing) should return nil")
	}
	if ctx.GetSection("scalar") != nil {
		t.Error("GetSection on non-map should return nil")
	}
}

func TestCompileContext_WithSource(t *testing.T) {
	source, err := platform.Resolve(platform.X8664Linux)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	ctx := NewCompileContext(nil).WithSource(source)
	if ctx.Source().Triple() != "x86_64-unknown-linux-gnu" {
		t.Errorf("Source().Triple() = %q", ctx.Source().Triple())
	}
}
