package compiler

import (
	"errors"
	"testing"
)

// fakeStep is a minimal Step for graph tests.
type fakeStep struct {
	id     StepID
	deps   []StepID
	status StepStatus
	apply  func(RunContext) error
}

func newFakeStep(id string, deps ...string) *fakeStep {
	depIDs := make([]StepID, 0, len(deps))
	for _, d := range deps {
		depIDs = append(depIDs, MustNewStepID(d))
	}
	return &fakeStep{
		id:     MustNewStepID(id),
		deps:   depIDs,
		status: StatusNeedsApply,
	}
}

func (s *fakeStep) ID() StepID           { return s.id }
func (s *fakeStep) DependsOn() []StepID  { return s.deps }
func (s *fakeStep) Check(RunContext) (StepStatus, error) { return s.status, nil }
func (s *fakeStep) Plan(RunContext) (Diff, error) {
	return NewDiff(ActionInstall, "fake", s.id.String(), ""), nil
}
func (s *fakeStep) Apply(ctx RunContext) error {
	if s.apply != nil {
		return s.apply(ctx)
	}
	return nil
}
func (s *fakeStep) Explain(ExplainContext) Explanation {
	return NewExplanation("fake step", "", nil)
}

func TestStepGraph_AddDuplicate(t *testing.T) {
	g := NewStepGraph()
	if err := g.Add(newFakeStep("a")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	err := g.Add(newFakeStep("a"))
	if !errors.Is(err, ErrDuplicateStep) {
		t.Errorf("Add() error = %v, want ErrDuplicateStep", err)
	}
}

func TestStepGraph_ValidateMissingDep(t *testing.T) {
	g := NewStepGraph()
	if err := g.Add(newFakeStep("b", "a")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := g.Validate(); !errors.Is(err, ErrMissingDep) {
		t.Errorf("Validate() error = %v, want ErrMissingDep", err)
	}
}

func TestStepGraph_TopologicalSort_RespectsDependencies(t *testing.T) {
	g := NewStepGraph()
	// Insert out of dependency order on purpose.
	for _, s := range []*fakeStep{
		newFakeStep("tool", "bootstrap"),
		newFakeStep("bootstrap", "toolchain"),
		newFakeStep("toolchain"),
	} {
		if err := g.Add(s); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}

	pos := make(map[string]int)
	for i, s := range sorted {
		pos[s.ID().String()] = i
	}
	if pos["toolchain"] > pos["bootstrap"] || pos["bootstrap"] > pos["tool"] {
		t.Errorf("sort order violates dependencies: %v", pos)
	}
}

func TestStepGraph_TopologicalSort_StableForIndependentSteps(t *testing.T) {
	g := NewStepGraph()
	names := []string{"first", "second", "third", "fourth"}
	for _, n := range names {
		if err := g.Add(newFakeStep(n)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("TopologicalSort() error = %v", err)
	}
	for i, s := range sorted {
		if s.ID().String() != names[i] {
			t.Fatalf("sorted[%d] = %s, want %s (insertion order)", i, s.ID().String(), names[i])
		}
	}
}

func TestStepGraph_TopologicalSort_DetectsCycle(t *testing.T) {
	g := NewStepGraph()
	if err := g.Add(newFakeStep("a", "b")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := g.Add(newFakeStep("b", "a")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err := g.TopologicalSort()
	if !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("TopologicalSort() error = %v, want ErrCyclicDependency", err)
	}
}

func TestStepGraph_StepsInsertionOrder(t *testing.T) {
	g := NewStepGraph()
	for _, n := range []string{"z", "a", "m"} {
		if err := g.Add(newFakeStep(n)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	steps := g.Steps()
	if steps[0].ID().String() != "z" || steps[2].ID().String() != "m" {
		t.Errorf("Steps() not in insertion order")
	}
}
