package compiler

import (
	"errors"
	"fmt"
)

// Errors for StepGraph operations.
var (
	ErrDuplicateStep    = errors.New("step with this ID already exists")
	ErrCyclicDependency = errors.New("cyclic dependency detected")
	ErrMissingDep       = errors.New("step depends on nonexistent step")
)

// StepGraph is a DAG of steps. Execution order is the topological order;
// among steps whose dependencies are met, insertion order wins, so the
// sequence a provider emits is the sequence that runs.
type StepGraph struct {
	steps     map[string]Step
	order     []string            // insertion order of step IDs
	dependsOn map[string][]string // step ID -> dependency IDs
}

// NewStepGraph creates an empty StepGraph.
func NewStepGraph() *StepGraph {
	return &StepGraph{
		steps:     make(map[string]Step),
		dependsOn: make(map[string][]string),
	}
}

// Len returns the number of steps in the graph.
func (g *StepGraph) Len() int {
	return len(g.steps)
}

// Add adds a step to the graph.
// Returns ErrDuplicateStep if a step with the same ID already exists.
func (g *StepGraph) Add(step Step) error {
	id := step.ID().String()
	if _, exists := g.steps[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStep, id)
	}

	g.steps[id] = step
	g.order = append(g.order, id)

	deps := step.DependsOn()
	depIDs := make([]string, len(deps))
	for i, dep := range deps {
		depIDs[i] = dep.String()
	}
	g.dependsOn[id] = depIDs

	return nil
}

// Get retrieves a step by ID.
func (g *StepGraph) Get(id StepID) (Step, bool) {
	step, ok := g.steps[id.String()]
	return step, ok
}

// Steps returns all steps in insertion order.
func (g *StepGraph) Steps() []Step {
	steps := make([]Step, 0, len(g.order))
	for _, id := range g.order {
		steps = append(steps, g.steps[id])
	}
	return steps
}

// Validate checks that all dependencies exist.
func (g *StepGraph) Validate() error {
	for _, id := range g.order {
		for _, depID := range g.dependsOn[id] {
			if _, exists := g.steps[depID]; !exists {
				return fmt.Errorf("%w: step %q depends on %q", ErrMissingDep, id, depID)
			}
		}
	}
	return nil
}

// TopologicalSort returns steps in dependency order, stable with
// respect to insertion order. Returns ErrCyclicDependency if the graph
// contains a cycle.
func (g *StepGraph) TopologicalSort() ([]Step, error) {
	inDegree := make(map[string]int, len(g.steps))
	dependedBy := make(map[string][]string, len(g.steps))
	for _, id := range g.order {
		inDegree[id] = len(g.dependsOn[id])
		for _, depID := range g.dependsOn[id] {
			dependedBy[depID] = append(dependedBy[depID], id)
		}
	}

	index := make(map[string]int, len(g.order))
	for i, id := range g.order {
		index[id] = i
	}

	// Kahn's algorithm; the ready queue stays sorted by insertion index
	// so ties resolve to the order providers emitted the steps.
	queue := make([]string, 0, len(g.steps))
	for _, id := range g.order {
		if inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	enqueue := func(id string) {
		pos := len(queue)
		for i, queued := range queue {
			if index[id] < index[queued] {
				pos = i
				break
			}
		}
		queue = append(queue[:pos], append([]string{id}, queue[pos:]...)...)
	}

	sorted := make([]Step, 0, len(g.steps))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		sorted = append(sorted, g.steps[id])

		for _, dependent := range dependedBy[id] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				enqueue(dependent)
			}
		}
	}

	if len(sorted) != len(g.steps) {
		remaining := make([]string, 0)
		for _, id := range g.order {
			if inDegree[id] > 0 {
				remaining = append(remaining, id)
			}
		}
		return nil, fmt.Errorf("%w: involving %v", ErrCyclicDependency, remaining)
	}

	return sorted, nil
}
